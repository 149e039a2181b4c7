package microrec

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/transito-santiago/micro-recommender/feed"
	"github.com/transito-santiago/micro-recommender/geo"
	"github.com/transito-santiago/micro-recommender/recommend"
)

// positionsFetcher is the slice of the feed client the handlers use.
type positionsFetcher interface {
	FetchPositions(ctx context.Context, service, direction string) ([]feed.PositionRecord, error)
}

// routeFinder is the slice of the routing client the handlers use.
type routeFinder interface {
	Route(ctx context.Context, src, dst geo.Point) ([]geo.Point, error)
}

type api struct {
	feed           positionsFetcher
	routing        routeFinder
	params         recommend.Params
	feedConfigured bool
}

// handleSearch serves POST /api/search: destination-aware recommendations
// plus a best-effort street polyline from stop to destination.
func (a *api) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	stop, dest, err := req.points()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := a.feed.FetchPositions(r.Context(), req.Service, req.Direction)
	if err != nil {
		log.Error().Err(err).Msg("positions fetch failed")
		writeError(w, feedErrorStatus(err), "positions feed unavailable: "+err.Error())
		return
	}
	candidates := recommend.ToDestination(records, stop, dest, a.params)
	recommended := make([]recommend.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Recommended {
			recommended = append(recommended, c)
		}
	}

	resp := searchResponse{
		OK:               true,
		GeneratedAt:      iso8601Now(),
		Stop:             stop,
		Dest:             dest,
		CandidateCount:   len(candidates),
		RecommendedCount: len(recommended),
		Candidates:       candidates,
		Recommended:      recommended,
	}
	if !req.SkipRoute && a.routing != nil {
		if pts, err := a.routing.Route(r.Context(), stop, dest); err != nil {
			log.Warn().Err(err).Msg("route lookup failed, responding without polyline")
		} else {
			resp.StopToDest = polylinePairs(pts)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleNearby serves GET /api/nearby: vehicles approaching the stop, ranked
// by ETA, without any destination filtering.
func (a *api) handleNearby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	stop, err := parseQueryPoint(q.Get("stop_lat"), q.Get("stop_lon"), "stop")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := a.feed.FetchPositions(r.Context(), q.Get("service"), q.Get("direction"))
	if err != nil {
		log.Error().Err(err).Msg("positions fetch failed")
		writeError(w, feedErrorStatus(err), "positions feed unavailable: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, nearbyResponse{
		OK:          true,
		GeneratedAt: iso8601Now(),
		Stop:        stop,
		Candidates:  recommend.NearStop(records, stop, a.params),
	})
}

// feedErrorStatus maps ingestion failures to HTTP statuses: a missing
// endpoint is a deployment fault, everything upstream is a bad gateway.
func feedErrorStatus(err error) int {
	var te *feed.TransportError
	var fe *feed.FormatError
	switch {
	case errors.Is(err, feed.ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.As(err, &te), errors.As(err, &fe):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
