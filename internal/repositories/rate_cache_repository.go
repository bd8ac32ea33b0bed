package repositories

import (
	"context"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/pkg/cache"
)

type rateCache struct {
	store     cache.CacheOperations
	key       string
	retention time.Duration
}

// NewRateCache keeps the rate set of provider in store for retention. The
// retention outlives the freshness TTL so a stale set can still be served.
func NewRateCache(store cache.CacheOperations, provider string, retention time.Duration) RateCache {
	return &rateCache{
		store:     store,
		key:       cache.ExchangeRatesKey(provider),
		retention: retention,
	}
}

func (c *rateCache) Load(ctx context.Context) (*models.ExchangeRates, error) {
	var rates models.ExchangeRates
	if err := c.store.Get(ctx, c.key, &rates); err != nil {
		return nil, err
	}
	if len(rates.Rates) == 0 {
		return nil, cache.ErrCacheMiss
	}
	return &rates, nil
}

func (c *rateCache) Store(ctx context.Context, rates models.ExchangeRates) error {
	return c.store.Set(ctx, c.key, rates, c.retention)
}
