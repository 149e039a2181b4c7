package microrec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/transito-santiago/micro-recommender/geo"
)

// QueryError marks a request the client got wrong: missing or out-of-range
// coordinates, malformed bodies. Handlers translate it to a 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// coordValue accepts a coordinate as either a JSON number or a numeric
// string, since upstream clients send both.
type coordValue struct {
	val float64
	set bool
}

func (c *coordValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return &QueryError{Msg: "coordinate is not numeric: " + s}
	}
	c.val = v
	c.set = true
	return nil
}

// searchRequest is the POST /api/search body. Stop coordinates are required;
// destination coordinates are required for recommendation mode.
type searchRequest struct {
	StopLat   coordValue `json:"stop_lat"`
	StopLon   coordValue `json:"stop_lon"`
	DestLat   coordValue `json:"dest_lat"`
	DestLon   coordValue `json:"dest_lon"`
	Service   string     `json:"service"`
	Direction string     `json:"direction"`
	SkipRoute bool       `json:"skip_route"`
}

func (r *searchRequest) points() (stop, dest geo.Point, err error) {
	stop, err = parsePoint(r.StopLat, r.StopLon, "stop")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	dest, err = parsePoint(r.DestLat, r.DestLon, "dest")
	if err != nil {
		return geo.Point{}, geo.Point{}, err
	}
	return stop, dest, nil
}

// parsePoint validates presence and WGS84 range of a coordinate pair.
func parsePoint(lat, lon coordValue, name string) (geo.Point, error) {
	if !lat.set || !lon.set {
		return geo.Point{}, &QueryError{Msg: "missing " + name + " coordinates"}
	}
	if lat.val < -90 || lat.val > 90 {
		return geo.Point{}, &QueryError{Msg: fmt.Sprintf("%s_lat out of range: %g", name, lat.val)}
	}
	if lon.val < -180 || lon.val > 180 {
		return geo.Point{}, &QueryError{Msg: fmt.Sprintf("%s_lon out of range: %g", name, lon.val)}
	}
	return geo.Point{Lat: lat.val, Lon: lon.val}, nil
}

// parseQueryPoint reads a coordinate pair from URL query values.
func parseQueryPoint(latStr, lonStr, name string) (geo.Point, error) {
	var lat, lon coordValue
	if s := strings.TrimSpace(latStr); s != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			lat = coordValue{val: v, set: true}
		}
	}
	if s := strings.TrimSpace(lonStr); s != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			lon = coordValue{val: v, set: true}
		}
	}
	return parsePoint(lat, lon, name)
}
