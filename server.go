package microrec

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transito-santiago/micro-recommender/config"
	"github.com/transito-santiago/micro-recommender/feed"
	"github.com/transito-santiago/micro-recommender/recommend"
	"github.com/transito-santiago/micro-recommender/routing"
)

var server *http.Server

// StartServer wires the feed and routing clients from the loaded
// configuration and starts the HTTP listener in the background.
func StartServer() {
	a := &api{
		feed:           feed.NewClient(config.Config.Feed),
		routing:        routing.NewClient(config.Config.Routing),
		params:         recommend.FromConfig(config.Config.Recommender),
		feedConfigured: config.Config.Feed.URL != "",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", a.handleHealth)
	mux.HandleFunc("/api/search", a.handleSearch)
	mux.HandleFunc("/api/nearby", a.handleNearby)

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", addr).Bool("feed_configured", a.feedConfigured).Msg("server listening")
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM and drains the
// server with a bounded deadline.
func HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		} else {
			log.Info().Msg("server shut down")
		}
	}
}
