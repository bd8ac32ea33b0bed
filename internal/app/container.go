// Package app assembles the importer from configuration.
package app

import (
	"context"
	"fmt"

	"dominium-listings/internal/extractor"
	"dominium-listings/internal/middleware"
	"dominium-listings/internal/repositories"
	"dominium-listings/internal/services"
	"dominium-listings/internal/transformers"
	"dominium-listings/internal/validators"
	"dominium-listings/pkg/cache"
	"dominium-listings/pkg/config"
	"dominium-listings/pkg/database"
	"dominium-listings/pkg/fetcher"
	"dominium-listings/pkg/geocoder"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/media"
	"dominium-listings/pkg/rates"
)

// Container holds the wired services shared by the HTTP server and the CLI.
type Container struct {
	Config    *config.Config
	Rates     *services.ExchangeRateService
	Importer  *services.ImportService
	Listings  repositories.ListingRepository
	Images    repositories.ImageRepository
	Throttle  *middleware.RateLimiter
	redisUsed bool
}

type storage struct {
	listings repositories.ListingRepository
	images   repositories.ImageRepository
	taxonomy repositories.TaxonomyRepository
	media    media.Store
}

// Build connects the configured stores and wires every service.
func Build(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	st, err := c.initializeStorage()
	if err != nil {
		return nil, err
	}
	c.Listings = st.listings
	c.Images = st.images

	rateStore := c.initializeCache()
	rateCache := repositories.NewRateCache(rateStore, rates.ProviderName, cfg.Rates.StaleRetention)
	rateClient := rates.NewClient(cfg.Rates.URL, cfg.Rates.Timeout, cfg.Rates.MaxRetries)
	c.Rates = services.NewExchangeRateService(rateClient, rateCache, rates.ProviderName, cfg.Rates.TTL)

	addrTrans := transformers.NewAddressTransformer(cfg.Geocoder.CountrySuffix, cfg.Geocoder.DistrictTokens)
	geocoding := services.NewGeocodingService(
		geocoder.NewNominatimBackend(cfg.Geocoder.URL, cfg.Geocoder.Timeout),
		addrTrans,
		geocoder.NewCache(),
		cfg.Geocoder.UserAgent,
	)
	listingTrans := transformers.NewListingTransformer(
		extractor.New(),
		transformers.NewPriceTransformer(),
		geocoding,
		cfg.Importer.DescriptionMaxLength,
	)

	images := services.NewImageService(
		fetcher.NewImageDownloader(cfg.Importer.UserAgent, cfg.Importer.ImageTimeout),
		st.media,
		st.images,
	)

	c.Throttle = middleware.NewWindowLimiter(cfg.Throttle.Limit, cfg.Throttle.Window)
	c.Importer = services.NewImportService(
		listingTrans,
		c.Rates,
		validators.NewListingValidator(),
		st.listings,
		st.taxonomy,
		images,
		c.documentFetcher(),
		c.Throttle,
	)
	return c, nil
}

func (c *Container) initializeStorage() (*storage, error) {
	cfg := c.Config
	switch cfg.Database.Driver {
	case "postgres":
		if err := database.InitPostgres(cfg); err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return &storage{
			listings: repositories.NewPostgresListingRepository(database.PgPool),
			images:   repositories.NewPostgresImageRepository(database.PgPool),
			taxonomy: repositories.NewPostgresTaxonomyRepository(database.PgPool),
			media:    media.NewDiskStore(cfg.Importer.MediaDir),
		}, nil
	default:
		if err := database.InitDB(cfg); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store, err := media.NewGridFSStore(database.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			listings: repositories.NewListingRepository(database.DB),
			images:   repositories.NewImageRepository(database.DB),
			taxonomy: repositories.NewTaxonomyRepository(database.DB),
			media:    store,
		}, nil
	}
}

// initializeCache returns the Redis store when enabled and reachable, and an
// in-process store otherwise.
func (c *Container) initializeCache() cache.CacheOperations {
	cfg := c.Config
	if !cfg.Redis.Enabled {
		return cache.NewMemoryStore()
	}
	err := cache.InitRedis(&cache.RedisConfig{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		TLSEnabled:  cfg.Redis.TLSEnabled,
		TLSCertFile: cfg.Redis.TLSCertFile,
	})
	if err != nil {
		logger.GlobalLogger.Warnf("Redis unavailable, caching exchange rates in memory: %v", err)
		return cache.NewMemoryStore()
	}
	c.redisUsed = true
	return cache.NewRedisStore(cache.RedisClient)
}

func (c *Container) documentFetcher() fetcher.DocumentFetcher {
	cfg := c.Config.Importer
	if cfg.FetchMode == "browser" {
		return fetcher.NewBrowserFetcher(cfg.UserAgent, cfg.FetchTimeout, cfg.ChromePath)
	}
	return fetcher.NewHTTPFetcher(cfg.UserAgent, cfg.FetchTimeout)
}

// Health pings the primary store and, when in use, Redis.
func (c *Container) Health(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case "postgres":
		if err := database.PgPool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres unavailable: %w", err)
		}
	default:
		if err := database.MongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("mongodb unavailable: %w", err)
		}
	}
	if c.redisUsed {
		if err := cache.Ping(ctx); err != nil {
			return fmt.Errorf("redis unavailable: %w", err)
		}
	}
	return nil
}

func (c *Container) Close() {
	database.CloseDB()
	database.ClosePostgres()
	cache.CloseRedis()
}
