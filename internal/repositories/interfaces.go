package repositories

import (
	"context"
	"errors"

	"dominium-listings/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id string) (*models.Listing, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.ListingImage) error
	FindByListing(ctx context.Context, listingID string) ([]models.ListingImage, error)
}

// TaxonomyRepository resolves classification entities by case-insensitive
// trimmed name, creating them on first use.
type TaxonomyRepository interface {
	GetOrCreatePropertyType(ctx context.Context, name string) (*models.PropertyType, error)
	GetOrCreateDealType(ctx context.Context, name string) (*models.DealType, error)
}

// RateCache stores the last fetched exchange-rate set. Load returns
// cache.ErrCacheMiss when nothing is stored.
type RateCache interface {
	Load(ctx context.Context) (*models.ExchangeRates, error)
	Store(ctx context.Context, rates models.ExchangeRates) error
}
