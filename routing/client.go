// Package routing looks up an illustrative street route between two points.
// It is a best-effort collaborator: callers substitute an empty polyline when
// the lookup fails, and recommendation output never depends on it.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/transito-santiago/micro-recommender/config"
	"github.com/transito-santiago/micro-recommender/geo"
)

const orsDirectionsURL = "https://api.openrouteservice.org/v2/directions/driving-car"

// Client talks to OpenRouteService when an API key is configured, falling
// back to the public OSRM instance otherwise (or when ORS fails).
type Client struct {
	httpClient  *http.Client
	osrmBaseURL string
	orsAPIKey   string
}

// NewClient creates a routing client from configuration.
func NewClient(cfg config.RoutingConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if cfg.TimeoutMS <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		osrmBaseURL: cfg.OSRMBaseURL,
		orsAPIKey:   cfg.ORSAPIKey,
	}
}

// Route returns the street polyline from src to dst as (lat, lon) points.
func (c *Client) Route(ctx context.Context, src, dst geo.Point) ([]geo.Point, error) {
	if c.orsAPIKey != "" {
		if pts, err := c.routeORS(ctx, src, dst); err == nil {
			return pts, nil
		}
	}
	return c.routeOSRM(ctx, src, dst)
}

func (c *Client) routeOSRM(ctx context.Context, src, dst geo.Point) ([]geo.Point, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.osrmBaseURL, src.Lon, src.Lat, dst.Lon, dst.Lat)
	var body struct {
		Routes []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("routing: OSRM returned no routes")
	}
	return lonLatToPoints(body.Routes[0].Geometry.Coordinates), nil
}

func (c *Client) routeORS(ctx context.Context, src, dst geo.Point) ([]geo.Point, error) {
	q := url.Values{}
	q.Set("api_key", c.orsAPIKey)
	q.Set("start", fmt.Sprintf("%f,%f", src.Lon, src.Lat))
	q.Set("end", fmt.Sprintf("%f,%f", dst.Lon, dst.Lat))
	var body struct {
		Features []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := c.getJSON(ctx, orsDirectionsURL+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	if len(body.Features) == 0 {
		return nil, fmt.Errorf("routing: ORS returned no features")
	}
	return lonLatToPoints(body.Features[0].Geometry.Coordinates), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("routing: HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// lonLatToPoints converts GeoJSON [lon, lat] pairs into points.
func lonLatToPoints(coords [][]float64) []geo.Point {
	pts := make([]geo.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		pts = append(pts, geo.Point{Lat: c[1], Lon: c[0]})
	}
	return pts
}
