// Package fetcher retrieves remote listing pages and images.
package fetcher

import (
	"context"
	"fmt"
)

// DocumentFetcher downloads the markup behind a listing URL.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPError reports a failed retrieval. StatusCode is zero when no response
// was received.
type HTTPError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
