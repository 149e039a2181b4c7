// Package geo provides the spherical-earth math used to relate vehicle
// positions to stops: great-circle distance, initial bearing, angular
// differences and speed-based arrival estimates.
package geo

import (
	"math"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between two points in
// kilometers (haversine formula).
func DistanceKM(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKM * c
}

// BearingDeg returns the initial bearing from a to b in degrees clockwise
// from north, normalized into [0, 360).
func BearingDeg(a, b Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)
	return deg
}

// AngularDiffDeg returns the absolute difference between two compass
// directions, reflected into [0, 180].
func AngularDiffDeg(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ETAMinutes converts a distance and speed into minutes of travel. The speed
// is floored at floorKMH so a vehicle reporting zero while held at a light
// does not produce an unbounded estimate.
func ETAMinutes(distKM, speedKMH, floorKMH float64) float64 {
	s := math.Max(speedKMH, floorKMH)
	return distKM / s * 60
}
