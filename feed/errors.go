package feed

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no feed endpoint URL has been configured.
var ErrNotConfigured = errors.New("feed: endpoint URL not configured")

// TransportError is a network-level failure talking to the positions feed:
// connection error, timeout, or a non-2xx status. It aborts the whole
// invocation; there are no partial results.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("feed: HTTP %d from %s", e.Status, e.URL)
	}
	return fmt.Sprintf("feed: fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError means the feed body could not be parsed as JSON. A payload that
// parses but lacks the positions key is an empty feed, not a FormatError.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("feed: response is not valid JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
