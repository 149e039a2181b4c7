package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDistanceKM(t *testing.T) {
	stop := Point{Lat: -33.445, Lon: -70.650}
	vehicle := Point{Lat: -33.450, Lon: -70.650}

	if d := DistanceKM(stop, stop); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}
	d := DistanceKM(vehicle, stop)
	if !almostEqual(d, 0.556, 0.005) {
		t.Fatalf("distance = %f, want ~0.556", d)
	}
	if rev := DistanceKM(stop, vehicle); !almostEqual(d, rev, 1e-9) {
		t.Fatalf("distance not symmetric: %f vs %f", d, rev)
	}
}

func TestBearingDeg(t *testing.T) {
	origin := Point{Lat: 0, Lon: 0}
	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"due north", Point{Lat: 1, Lon: 0}, 0},
		{"due east", Point{Lat: 0, Lon: 1}, 90},
		{"due south", Point{Lat: -1, Lon: 0}, 180},
		{"due west", Point{Lat: 0, Lon: -1}, 270},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BearingDeg(origin, tc.to)
			if !almostEqual(got, tc.want, 0.01) {
				t.Fatalf("bearing = %f, want %f", got, tc.want)
			}
			if got < 0 || got >= 360 {
				t.Fatalf("bearing %f out of [0,360)", got)
			}
		})
	}
}

func TestBearingReciprocal(t *testing.T) {
	a := Point{Lat: -33.450, Lon: -70.650}
	b := Point{Lat: -33.445, Lon: -70.650}
	fwd := BearingDeg(a, b)
	back := BearingDeg(b, a)
	if !almostEqual(AngularDiffDeg(fwd, back), 180, 0.01) {
		t.Fatalf("reciprocal bearings %f and %f not ~180 apart", fwd, back)
	}
}

func TestAngularDiffDeg(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{90, 270, 180},
		{45, 90, 45},
		{359, 1, 2},
	}
	for _, tc := range tests {
		if got := AngularDiffDeg(tc.a, tc.b); !almostEqual(got, tc.want, 1e-9) {
			t.Errorf("AngularDiffDeg(%f, %f) = %f, want %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestETAMinutes(t *testing.T) {
	if got := ETAMinutes(0.556, 30, 5); !almostEqual(got, 1.112, 0.001) {
		t.Fatalf("ETA = %f, want ~1.112", got)
	}
	// floor takes over when the reported speed stalls
	if got := ETAMinutes(1.0, 0, 5); !almostEqual(got, 12, 1e-9) {
		t.Fatalf("floored ETA = %f, want 12", got)
	}
	if got := ETAMinutes(1.0, 2, 5); !almostEqual(got, 12, 1e-9) {
		t.Fatalf("floored ETA = %f, want 12", got)
	}
}
