package transformers

import (
	"context"

	"dominium-listings/internal/models"

	"github.com/shopspring/decimal"
)

type PriceTransformer interface {
	DetectCurrency(raw string) string
	CleanAmount(raw string) (decimal.Decimal, error)
	ConvertToUSD(amount decimal.Decimal, currency string, rates models.ExchangeRates) decimal.Decimal
	Normalize(raw string, rates models.ExchangeRates) (models.Price, error)
}

type AddressTransformer interface {
	NormalizeAddress(input string) string
	GeocodeVariants(address string) []string
}

type ListingTransformer interface {
	Transform(ctx context.Context, doc models.RawDocument, rates models.ExchangeRates, opts models.ImportOptions) (*models.ParsedListing, error)
}

// FieldExtractor turns markup into raw candidate fields.
type FieldExtractor interface {
	Extract(content []byte, source string) (*models.ExtractedFields, error)
}

// Geocoder resolves a free-text address; nil means no location was found.
type Geocoder interface {
	Geocode(ctx context.Context, address string) *models.Coordinates
}
