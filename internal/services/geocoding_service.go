package services

import (
	"context"
	"strings"

	"dominium-listings/internal/models"
	"dominium-listings/internal/transformers"
	"dominium-listings/pkg/geocoder"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"
)

// GeocodingService tries address variants against a backend and remembers
// successful answers.
type GeocodingService struct {
	backend   geocoder.Backend
	addrTrans transformers.AddressTransformer
	cache     *geocoder.Cache
	userAgent string
}

func NewGeocodingService(backend geocoder.Backend, addrTrans transformers.AddressTransformer, cache *geocoder.Cache, userAgent string) *GeocodingService {
	if cache == nil {
		cache = geocoder.NewCache()
	}
	return &GeocodingService{
		backend:   backend,
		addrTrans: addrTrans,
		cache:     cache,
		userAgent: userAgent,
	}
}

// Geocode returns the first variant the backend resolves, or nil. Backend
// failures are logged and the next variant is tried.
func (s *GeocodingService) Geocode(ctx context.Context, address string) *models.Coordinates {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}
	if coords, ok := s.cache.Get(address, s.userAgent); ok {
		metrics.GeocodeLookupsTotal.WithLabelValues("memo").Inc()
		return coords
	}

	for _, variant := range s.addrTrans.GeocodeVariants(address) {
		if ctx.Err() != nil {
			return nil
		}
		coords, err := s.backend.Lookup(ctx, variant, s.userAgent)
		if err != nil {
			metrics.GeocodeLookupsTotal.WithLabelValues("error").Inc()
			logger.GlobalLogger.Warnf("Geocoder lookup failed: query=%q, error=%v", variant, err)
			continue
		}
		if coords == nil {
			metrics.GeocodeLookupsTotal.WithLabelValues("miss").Inc()
			continue
		}
		metrics.GeocodeLookupsTotal.WithLabelValues("hit").Inc()
		s.cache.Put(address, s.userAgent, *coords)
		return coords
	}

	logger.GlobalLogger.Debugf("No geocoder match for address %q", address)
	return nil
}
