package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in headless Chrome for sites that build the
// listing with JavaScript.
type BrowserFetcher struct {
	userAgent string
	timeout   time.Duration
	execPath  string
}

func NewBrowserFetcher(userAgent string, timeout time.Duration, execPath string) *BrowserFetcher {
	return &BrowserFetcher{userAgent: userAgent, timeout: timeout, execPath: execPath}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(f.userAgent),
	)
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTask()
	taskCtx, cancel := context.WithTimeout(taskCtx, f.timeout)
	defer cancel()

	start := time.Now()
	status := 0
	resp, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(url))
	if resp != nil {
		status = int(resp.Status)
	}
	if err == nil && (status < 200 || status >= 300) {
		err = fmt.Errorf("unexpected status")
	}

	var html string
	if err == nil {
		err = chromedp.Run(taskCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	}
	metrics.DocumentFetchDuration.WithLabelValues("browser", strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.GlobalLogger.Errorf("Browser fetch failed: url=%s, status=%d, error=%v", url, status, err)
		return nil, &HTTPError{URL: url, StatusCode: status, Err: err}
	}
	return []byte(html), nil
}
