package microrec

import (
	"net/http"
)

type healthResponse struct {
	Status         string `json:"status"`
	FeedConfigured bool   `json:"feed_configured"`
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		FeedConfigured: a.feedConfigured,
	})
}
