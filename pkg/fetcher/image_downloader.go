package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxImageBytes = 20 << 20

// ImageDownloader fetches raw image bytes with a bounded timeout.
type ImageDownloader struct {
	userAgent  string
	httpClient *http.Client
}

func NewImageDownloader(userAgent string, timeout time.Duration) *ImageDownloader {
	return &ImageDownloader{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Download returns the body of url. Non-2xx answers and bodies that are not
// images are errors.
func (d *ImageDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %v", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %v", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body")
	}
	if ct := http.DetectContentType(data); len(ct) < 6 || ct[:6] != "image/" {
		return nil, fmt.Errorf("not an image (%s)", ct)
	}
	return data, nil
}
