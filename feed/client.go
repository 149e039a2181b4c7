package feed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transito-santiago/micro-recommender/config"
)

// Client fetches one positions snapshot per call. It holds no feed state:
// every invocation sees a fresh payload, and the response body is closed on
// all exit paths.
type Client struct {
	httpClient *http.Client
	cfg        config.FeedConfig
}

// NewClient creates a feed client from the configured endpoint, credentials
// and timeout.
func NewClient(cfg config.FeedConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if cfg.TimeoutMS <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

// Fetch retrieves and decodes the raw feed payload. Optional service and
// direction values are forwarded as query parameters under the configured
// parameter names.
func (c *Client) Fetch(ctx context.Context, service, direction string) (map[string]any, error) {
	if c.cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, Err: err}
	}
	q := req.URL.Query()
	if service != "" {
		q.Set(c.cfg.ServiceParam, service)
	}
	if direction != "" {
		q.Set(c.cfg.DirectionParam, direction)
	}
	req.URL.RawQuery = q.Encode()
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.User != "" && c.cfg.Pass != "" {
		req.SetBasicAuth(c.cfg.User, c.cfg.Pass)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: c.cfg.URL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, Err: err}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FormatError{Err: err}
	}
	log.Debug().Int("bytes", len(body)).Msg("positions feed fetched")
	return payload, nil
}

// FetchPositions is the full ingestion path: fetch, decode, normalize,
// deduplicate and filter in one call.
func (c *Client) FetchPositions(ctx context.Context, service, direction string) ([]PositionRecord, error) {
	payload, err := c.Fetch(ctx, service, direction)
	if err != nil {
		return nil, err
	}
	records := NormalizeAndFilter(payload, service, direction)
	log.Debug().Int("vehicles", len(records)).Msg("positions normalized")
	return records, nil
}
