package services

import (
	"context"
	"errors"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/repositories"
	"dominium-listings/pkg/cache"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/shopspring/decimal"
)

// RateFetcher retrieves the current rates from the remote provider.
type RateFetcher interface {
	Fetch(ctx context.Context) (map[string]decimal.Decimal, error)
}

type ExchangeRateService struct {
	fetcher RateFetcher
	cache   repositories.RateCache
	source  string
	ttl     time.Duration
	now     func() time.Time
}

func NewExchangeRateService(fetcher RateFetcher, cache repositories.RateCache, source string, ttl time.Duration) *ExchangeRateService {
	return &ExchangeRateService{
		fetcher: fetcher,
		cache:   cache,
		source:  source,
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetRates resolves the rate set in order: fresh cache, remote fetch, stale
// cache, built-in defaults. It never fails; the result always has UAH = 1.
func (s *ExchangeRateService) GetRates(ctx context.Context, forceRefresh bool) models.ExchangeRates {
	cached, err := s.cache.Load(ctx)
	switch {
	case err == nil, errors.Is(err, cache.ErrCacheMiss):
	case cache.IsTransient(err):
		logger.GlobalLogger.Warnf("Exchange rate cache unavailable: %v", err)
	default:
		// undecodable entry; the next successful fetch overwrites it
		logger.GlobalLogger.Errorf("Exchange rate cache entry is corrupt: %v", err)
	}
	if cached != nil {
		metrics.CacheHitsTotal.WithLabelValues("exchange_rates").Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues("exchange_rates").Inc()
	}

	if !forceRefresh && cached != nil && cached.Fresh(s.ttl, s.now()) {
		metrics.RateFetchesTotal.WithLabelValues("cache").Inc()
		return cached.WithIdentity()
	}

	fetched, err := s.fetcher.Fetch(ctx)
	if err == nil {
		rates := models.ExchangeRates{Rates: fetched, FetchedAt: s.now().UTC(), Source: s.source}.WithIdentity()
		if err := s.cache.Store(ctx, rates); err != nil {
			logger.GlobalLogger.Warnf("Failed to cache exchange rates: %v", err)
		}
		metrics.RateFetchesTotal.WithLabelValues("remote").Inc()
		return rates
	}

	if cached != nil {
		logger.GlobalLogger.Warnf("Exchange rate fetch failed, serving cached rates from %s: %v", cached.FetchedAt.Format(time.RFC3339), err)
		metrics.RateFetchesTotal.WithLabelValues("stale_cache").Inc()
		return cached.WithIdentity()
	}

	logger.GlobalLogger.Warnf("Exchange rate fetch failed, using default rates: %v", err)
	metrics.RateFetchesTotal.WithLabelValues("default").Inc()
	return models.DefaultExchangeRates()
}
