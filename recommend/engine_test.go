package recommend

import (
	"math"
	"testing"

	"github.com/transito-santiago/micro-recommender/feed"
	"github.com/transito-santiago/micro-recommender/geo"
)

var (
	testStop = geo.Point{Lat: -33.445, Lon: -70.650}
	destN    = geo.Point{Lat: -33.440, Lon: -70.650} // north of the stop
	destS    = geo.Point{Lat: -33.455, Lon: -70.650} // south of the stop
)

func vehicle(id string, lat, lon, speed float64, headingCode *int) feed.PositionRecord {
	rec := feed.PositionRecord{
		VehicleID: id,
		Lat:       lat,
		Lon:       lon,
		SpeedKMH:  speed,
		Service:   "210",
		Direction: "ida",
	}
	if headingCode != nil {
		code := *headingCode
		deg := float64(code%8) * 45
		rec.HeadingCode = &code
		rec.HeadingDeg = &deg
	}
	return rec
}

func code(c int) *int { return &c }

func TestNearStopApproachingVehicle(t *testing.T) {
	// 0.556 km due south of the stop, heading north
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, code(0)),
	}
	got := NearStop(records, testStop, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if math.Abs(c.DistanceToStopKM-0.556) > 0.005 {
		t.Fatalf("distance = %f, want ~0.556", c.DistanceToStopKM)
	}
	if math.Abs(c.ETAToStopMin-1.112) > 0.01 {
		t.Fatalf("eta = %f, want ~1.112", c.ETAToStopMin)
	}
	if c.ApproachingStop == nil || !*c.ApproachingStop {
		t.Fatalf("approaching = %v, want true", c.ApproachingStop)
	}
}

func TestNearStopExcludesMovingAway(t *testing.T) {
	// south of the stop but heading south: angle to stop is 180
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, code(4)),
	}
	if got := NearStop(records, testStop, DefaultParams()); len(got) != 0 {
		t.Fatalf("got %d candidates, want 0", len(got))
	}
}

func TestNearStopRadiusCutoff(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("FAR111", -33.545, -70.650, 30, code(0)), // ~11 km away
		vehicle("NEAR22", -33.450, -70.650, 30, code(0)),
	}
	got := NearStop(records, testStop, DefaultParams())
	if len(got) != 1 || got[0].VehicleID != "NEAR22" {
		t.Fatalf("candidates = %+v, want only NEAR22", got)
	}
}

func TestNearStopUnknownHeadingRetained(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, nil),
	}
	got := NearStop(records, testStop, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.ApproachingStop != nil || c.AngleToStopDeg != nil || c.BearingToStopDeg != nil {
		t.Fatalf("heading-derived fields should be unset: %+v", c)
	}
}

func TestNearStopSortedByETA(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("SLOW", -33.455, -70.650, 10, code(0)), // farther and slower
		vehicle("FAST", -33.450, -70.650, 40, code(0)),
	}
	got := NearStop(records, testStop, DefaultParams())
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].VehicleID != "FAST" || got[1].VehicleID != "SLOW" {
		t.Fatalf("order = %q, %q", got[0].VehicleID, got[1].VehicleID)
	}
}

func TestToDestinationRecommended(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, code(0)),
	}
	got := ToDestination(records, testStop, destN, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if !c.Recommended {
		t.Fatalf("candidate not recommended: %+v", c)
	}
	if c.AngleToDestDeg == nil || *c.AngleToDestDeg > 1 {
		t.Fatalf("angle to dest = %v, want ~0", c.AngleToDestDeg)
	}
}

func TestToDestinationMisalignedRetained(t *testing.T) {
	// approaches the stop northbound, but the rider wants to go south
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, code(0)),
	}
	got := ToDestination(records, testStop, destS, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.Recommended {
		t.Fatalf("misaligned candidate must not be recommended: %+v", c)
	}
	if c.AngleToDestDeg == nil || math.Abs(*c.AngleToDestDeg-180) > 1 {
		t.Fatalf("angle to dest = %v, want ~180", c.AngleToDestDeg)
	}
}

func TestToDestinationUnknownHeadingNeverRecommended(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.450, -70.650, 30, nil),
	}
	got := ToDestination(records, testStop, destN, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.Recommended {
		t.Fatalf("unknown-heading candidate must not be recommended")
	}
	if c.AngleToDestDeg != nil {
		t.Fatalf("angle to dest should be unset without heading")
	}
}

func TestToDestinationETACap(t *testing.T) {
	// ~4.9 km out, crawling: the speed floor still yields an ETA beyond the cap
	records := []feed.PositionRecord{
		vehicle("AB1234", -33.489, -70.650, 1, code(0)),
	}
	got := ToDestination(records, testStop, destN, DefaultParams())
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.ETAToStopMin <= DefaultParams().MaxETAMin {
		t.Fatalf("eta = %f, expected beyond the cap", c.ETAToStopMin)
	}
	if c.Recommended {
		t.Fatalf("over-ETA candidate must not be recommended")
	}
}

func TestToDestinationSortRecommendedFirst(t *testing.T) {
	records := []feed.PositionRecord{
		vehicle("UNKNOWN", -33.446, -70.650, 40, nil), // closest, but no heading
		vehicle("GOODBUS", -33.450, -70.650, 30, code(0)),
	}
	got := ToDestination(records, testStop, destN, DefaultParams())
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].VehicleID != "GOODBUS" || !got[0].Recommended {
		t.Fatalf("recommended candidate not first: %+v", got)
	}
	if got[1].VehicleID != "UNKNOWN" || got[1].Recommended {
		t.Fatalf("unknown-heading candidate misplaced: %+v", got)
	}
}
