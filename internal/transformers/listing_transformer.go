package transformers

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"
	"dominium-listings/pkg/logger"
)

var errNotUTF8 = errors.New("could not decode document as UTF-8")

type listingTransformer struct {
	extractor    FieldExtractor
	prices       PriceTransformer
	geocoder     Geocoder
	descriptions *descriptionSanitizer
}

// NewListingTransformer composes extraction, price normalization and the
// optional geocoder. geocoder may be nil.
func NewListingTransformer(extractor FieldExtractor, prices PriceTransformer, geocoder Geocoder, descriptionLimit int) ListingTransformer {
	return &listingTransformer{
		extractor:    extractor,
		prices:       prices,
		geocoder:     geocoder,
		descriptions: newDescriptionSanitizer(descriptionLimit),
	}
}

func (t *listingTransformer) Transform(ctx context.Context, doc models.RawDocument, rates models.ExchangeRates, opts models.ImportOptions) (*models.ParsedListing, error) {
	if !utf8.Valid(doc.Content) {
		return nil, &apperrors.ParseError{Source: doc.Source, Err: errNotUTF8}
	}

	fields, err := t.extractor.Extract(doc.Content, doc.Source)
	if err != nil {
		return nil, err
	}

	listing := &models.ParsedListing{
		Source:       doc.Source,
		Title:        fields.Title,
		Address:      fields.Address,
		Area:         fields.Area,
		Rooms:        fields.Rooms,
		MainImageURL: fields.MainImageURL,
		Gallery:      fields.Gallery,
		PropertyType: fields.PropertyType,
		DealType:     fields.DealType,
		Coordinates:  fields.Coordinates,
		Warnings:     []string{},
	}
	if listing.Rooms < 1 {
		listing.Rooms = 1
	}
	if listing.Area < 0 {
		listing.Area = 0
	}

	price, err := t.prices.Normalize(fields.RawPrice, rates)
	listing.Price = price.AmountUSD
	listing.SourceCurrency = price.SourceCurrency
	if err != nil {
		logger.GlobalLogger.Warnf("Price degraded: source=%s, raw=%q, error=%v", doc.Source, fields.RawPrice, err)
		listing.Warnings = append(listing.Warnings, fmt.Sprintf("price: %v", err))
	}

	listing.DescriptionHTML, listing.Description = t.descriptions.Sanitize(fields.DescriptionHTML)

	if opts.Geocode && listing.Coordinates == nil && listing.Address != "" && t.geocoder != nil {
		if coords := t.geocoder.Geocode(ctx, listing.Address); coords != nil {
			listing.Coordinates = coords
		} else {
			listing.Warnings = append(listing.Warnings, "geocoding: no location found for address")
		}
	}

	return listing, nil
}
