package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/gocolly/colly/v2"
)

// HTTPFetcher retrieves static pages with a colly collector.
type HTTPFetcher struct {
	collector *colly.Collector
}

func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(timeout)
	return &HTTPFetcher{collector: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &HTTPError{URL: url, Err: err}
	}

	// Clone shares the transport but keeps callbacks per call.
	c := f.collector.Clone()

	var (
		body   []byte
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	start := time.Now()
	err := c.Visit(url)
	metrics.DocumentFetchDuration.WithLabelValues("http", strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.GlobalLogger.Errorf("Document fetch failed: url=%s, status=%d, error=%v", url, status, err)
		return nil, &HTTPError{URL: url, StatusCode: status, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &HTTPError{URL: url, StatusCode: status, Err: fmt.Errorf("unexpected status")}
	}
	return body, nil
}
