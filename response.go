package microrec

import (
	"encoding/json"
	"net/http"

	"github.com/transito-santiago/micro-recommender/geo"
	"github.com/transito-santiago/micro-recommender/recommend"
)

// searchResponse answers POST /api/search: every retained candidate, the
// recommended subset the UI highlights, and an optional illustrative
// stop-to-destination polyline.
type searchResponse struct {
	OK               bool                  `json:"ok"`
	GeneratedAt      string                `json:"generated_at"`
	Stop             geo.Point             `json:"stop"`
	Dest             geo.Point             `json:"dest"`
	StopToDest       [][2]float64          `json:"stop_to_dest,omitempty"`
	CandidateCount   int                   `json:"candidate_count"`
	RecommendedCount int                   `json:"recommended_count"`
	Candidates       []recommend.Candidate `json:"candidates"`
	Recommended      []recommend.Candidate `json:"recommended"`
}

// nearbyResponse answers GET /api/nearby.
type nearbyResponse struct {
	OK          bool                  `json:"ok"`
	GeneratedAt string                `json:"generated_at"`
	Stop        geo.Point             `json:"stop"`
	Candidates  []recommend.Candidate `json:"candidates"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{OK: false, Error: msg})
}

// polylinePairs flattens route points into [lat, lon] pairs for JSON output.
func polylinePairs(pts []geo.Point) [][2]float64 {
	if len(pts) == 0 {
		return nil
	}
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.Lat, p.Lon}
	}
	return out
}
