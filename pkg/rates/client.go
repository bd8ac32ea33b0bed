// Package rates fetches currency exchange rates from the PrivatBank public API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dominium-listings/internal/utils"
	"dominium-listings/pkg/logger"

	"github.com/shopspring/decimal"
)

const ProviderName = "privatbank"

// Client calls the PrivatBank cash-rate endpoint.
type Client struct {
	url        string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

// rateItem is one entry of the PrivatBank payload; rates arrive as strings.
type rateItem struct {
	Currency string `json:"ccy"`
	Base     string `json:"base_ccy"`
	Buy      string `json:"buy"`
	Sale     string `json:"sale"`
}

func NewClient(url string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		url:        url,
		maxRetries: maxRetries,
		backoff:    time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the sale rate of every currency in UAH. A payload with fewer
// than two usable rates is treated as malformed.
func (c *Client) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	var items []rateItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rates: %v", err)
	}

	result := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		code := strings.ToUpper(strings.TrimSpace(item.Currency))
		if code == "" {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(item.Sale))
		if err != nil || !rate.IsPositive() {
			logger.GlobalLogger.Debugf("Skipping exchange rate: ccy=%s, sale=%q", item.Currency, item.Sale)
			continue
		}
		result[code] = rate
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("exchange rate payload has %d usable rates", len(result))
	}
	return result, nil
}

// get performs the request with a linear backoff between attempts.
func (c *Client) get(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retry, err := c.do(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err
		logger.GlobalLogger.Errorf("Exchange rate request failed (attempt %d/%d): url=%s, error=%v", attempt, c.maxRetries, c.url, err)
		if !retry || attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return nil, fmt.Errorf("failed to fetch exchange rates after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, utils.IsRetryableError(err), err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, utils.WrapError(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, utils.IsRetryableStatus(resp.StatusCode), fmt.Errorf("status=%s, response=%s", resp.Status, string(body))
	}
	return body, false, nil
}
