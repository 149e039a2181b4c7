package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	lib "github.com/transito-santiago/micro-recommender"
	"github.com/transito-santiago/micro-recommender/config"
	"github.com/transito-santiago/micro-recommender/feed"
	"github.com/transito-santiago/micro-recommender/geo"
	"github.com/transito-santiago/micro-recommender/recommend"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	stopLat := flag.Float64("stopLat", 0, "stop latitude (oneshot)")
	stopLon := flag.Float64("stopLon", 0, "stop longitude (oneshot)")
	destLat := flag.Float64("destLat", 0, "destination latitude (oneshot, optional)")
	destLon := flag.Float64("destLon", 0, "destination longitude (oneshot, optional)")
	service := flag.String("service", "", "service filter, e.g. 210")
	direction := flag.String("direction", "", "direction filter, e.g. ida|regreso")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatal().Err(err).Msg("configuration load failed")
	}

	switch *mode {
	case "serve":
		lib.StartServer()
		lib.HandleGracefulShutdown()
	case "oneshot":
		if err := oneshot(*stopLat, *stopLon, *destLat, *destLon, *service, *direction); err != nil {
			log.Fatal().Err(err).Msg("oneshot failed")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// oneshot fetches a single snapshot and prints the ranked candidates. A zero
// destination pair means stop-only mode.
func oneshot(stopLat, stopLon, destLat, destLon float64, service, direction string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := feed.NewClient(config.Config.Feed)
	records, err := client.FetchPositions(ctx, service, direction)
	if err != nil {
		return err
	}

	params := recommend.FromConfig(config.Config.Recommender)
	stop := geo.Point{Lat: stopLat, Lon: stopLon}

	var candidates []recommend.Candidate
	if destLat != 0 || destLon != 0 {
		dest := geo.Point{Lat: destLat, Lon: destLon}
		candidates = recommend.ToDestination(records, stop, dest, params)
	} else {
		candidates = recommend.NearStop(records, stop, params)
	}

	out, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
