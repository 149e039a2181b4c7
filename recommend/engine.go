package recommend

import (
	"sort"

	"github.com/transito-santiago/micro-recommender/config"
	"github.com/transito-santiago/micro-recommender/feed"
	"github.com/transito-santiago/micro-recommender/geo"
)

// Params holds the scoring thresholds. Use DefaultParams or FromConfig; zero
// values are not meaningful.
type Params struct {
	// RadiusKM is the stop-relevance cutoff: vehicles farther away are not
	// candidates for an imminent arrival.
	RadiusKM float64
	// MaxETAMin caps how far out an arrival may be and still be recommended.
	MaxETAMin float64
	// HeadingToleranceDeg bounds both the stop-approach and the
	// destination-alignment angle checks.
	HeadingToleranceDeg float64
	// MinSpeedKMH floors reported speed in ETA computation.
	MinSpeedKMH float64
}

// DefaultParams mirrors the configuration defaults.
func DefaultParams() Params {
	return Params{
		RadiusKM:            5.0,
		MaxETAMin:           30.0,
		HeadingToleranceDeg: 90.0,
		MinSpeedKMH:         5.0,
	}
}

// FromConfig builds Params from the recommender configuration section.
func FromConfig(cfg config.RecommenderConfig) Params {
	return Params{
		RadiusKM:            cfg.RadiusKM,
		MaxETAMin:           cfg.MaxETAMin,
		HeadingToleranceDeg: cfg.HeadingToleranceDeg,
		MinSpeedKMH:         cfg.MinSpeedKMH,
	}
}

// Candidate is one vehicle scored against a stop and, in destination mode,
// the rider's travel direction. Candidates are recomputed per request and
// never stored.
type Candidate struct {
	VehicleID        string   `json:"vehicle_id"`
	Service          string   `json:"service,omitempty"`
	Direction        string   `json:"direction,omitempty"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	SpeedKMH         float64  `json:"speed_kmh"`
	DistanceToStopKM float64  `json:"distance_to_stop_km"`
	ETAToStopMin     float64  `json:"eta_to_stop_min"`
	HeadingCode      *int     `json:"heading_code,omitempty"`
	HeadingDeg       *float64 `json:"heading_deg,omitempty"`
	BearingToStopDeg *float64 `json:"bearing_to_stop_deg,omitempty"`
	AngleToStopDeg   *float64 `json:"angle_to_stop_deg,omitempty"`
	AngleToDestDeg   *float64 `json:"angle_to_dest_deg,omitempty"`
	ApproachingStop  *bool    `json:"approaching_stop,omitempty"`
	Recommended      bool     `json:"recommended"`
}

// scoreAgainstStop computes the stop-relative fields and applies the radius
// and approach filters. A vehicle whose heading is known and points away from
// the stop is irrelevant; unknown heading keeps the vehicle in play.
func scoreAgainstStop(rec feed.PositionRecord, stop geo.Point, p Params) (Candidate, bool) {
	pos := geo.Point{Lat: rec.Lat, Lon: rec.Lon}
	dist := geo.DistanceKM(pos, stop)
	if dist > p.RadiusKM {
		return Candidate{}, false
	}

	c := Candidate{
		VehicleID:        rec.VehicleID,
		Service:          rec.Service,
		Direction:        rec.Direction,
		Lat:              rec.Lat,
		Lon:              rec.Lon,
		SpeedKMH:         rec.SpeedKMH,
		DistanceToStopKM: dist,
		ETAToStopMin:     geo.ETAMinutes(dist, rec.SpeedKMH, p.MinSpeedKMH),
		HeadingCode:      rec.HeadingCode,
		HeadingDeg:       rec.HeadingDeg,
	}

	if rec.HeadingDeg != nil {
		bearing := geo.BearingDeg(pos, stop)
		diff := geo.AngularDiffDeg(*rec.HeadingDeg, bearing)
		approaching := diff <= p.HeadingToleranceDeg
		c.BearingToStopDeg = &bearing
		c.AngleToStopDeg = &diff
		c.ApproachingStop = &approaching
		if !approaching {
			return Candidate{}, false
		}
	}
	return c, true
}

// NearStop ranks vehicles by how soon they reach the stop.
func NearStop(records []feed.PositionRecord, stop geo.Point, p Params) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, rec := range records {
		if c, ok := scoreAgainstStop(rec, stop, p); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ETAToStopMin < out[j].ETAToStopMin
	})
	return out
}

// ToDestination additionally checks whether each approaching vehicle travels
// the same way the rider wants to go. Misaligned or unknown-heading vehicles
// stay in the list for visibility but are never marked recommended.
func ToDestination(records []feed.PositionRecord, stop, dest geo.Point, p Params) []Candidate {
	ref := geo.BearingDeg(stop, dest)
	out := make([]Candidate, 0, len(records))
	for _, rec := range records {
		c, ok := scoreAgainstStop(rec, stop, p)
		if !ok {
			continue
		}
		if c.HeadingDeg != nil {
			diff := geo.AngularDiffDeg(*c.HeadingDeg, ref)
			c.AngleToDestDeg = &diff
			approaching := c.ApproachingStop != nil && *c.ApproachingStop
			c.Recommended = approaching &&
				diff <= p.HeadingToleranceDeg &&
				c.ETAToStopMin <= p.MaxETAMin
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Recommended != out[j].Recommended {
			return out[i].Recommended
		}
		return out[i].ETAToStopMin < out[j].ETAToStopMin
	})
	return out
}
