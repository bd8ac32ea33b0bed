package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"
	"dominium-listings/internal/repositories"
	"dominium-listings/internal/transformers"
	"dominium-listings/internal/validators"
	"dominium-listings/pkg/cache"
	"dominium-listings/pkg/fetcher"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 9

// ThrottleGuard answers whether another import may start for key.
type ThrottleGuard interface {
	Allow(key string) bool
}

// RateProvider supplies the exchange rates used for price conversion.
type RateProvider interface {
	GetRates(ctx context.Context, forceRefresh bool) models.ExchangeRates
}

type ImportService struct {
	transformer transformers.ListingTransformer
	rates       RateProvider
	validator   validators.ListingValidator
	listings    repositories.ListingRepository
	taxonomy    repositories.TaxonomyRepository
	images      *ImageService
	fetcher     fetcher.DocumentFetcher
	throttle    ThrottleGuard
}

// NewImportService wires the orchestrator. fetcher may be nil when only
// local documents are imported; throttle may be nil to disable the guard.
func NewImportService(
	transformer transformers.ListingTransformer,
	rates RateProvider,
	validator validators.ListingValidator,
	listings repositories.ListingRepository,
	taxonomy repositories.TaxonomyRepository,
	images *ImageService,
	documentFetcher fetcher.DocumentFetcher,
	throttle ThrottleGuard,
) *ImportService {
	return &ImportService{
		transformer: transformer,
		rates:       rates,
		validator:   validator,
		listings:    listings,
		taxonomy:    taxonomy,
		images:      images,
		fetcher:     documentFetcher,
		throttle:    throttle,
	}
}

// ImportDocument imports a single document. Validation and persistence
// problems are reported in the outcome; the error is reserved for throttling
// and unreadable documents.
func (s *ImportService) ImportDocument(ctx context.Context, clientKey string, doc models.RawDocument, opts models.ImportOptions) (*models.ImportOutcome, error) {
	if err := s.guard(clientKey); err != nil {
		return nil, err
	}
	rates := s.rates.GetRates(ctx, false)
	return s.importOne(ctx, doc, rates, opts)
}

// ImportDocuments imports docs in order. Each item stands alone: a failure is
// recorded with its 1-based index and the batch moves on.
func (s *ImportService) ImportDocuments(ctx context.Context, clientKey string, docs []models.RawDocument, opts models.ImportOptions) (*models.BatchImportResult, error) {
	if err := s.guard(clientKey); err != nil {
		return nil, err
	}
	rates := s.rates.GetRates(ctx, false)

	result := &models.BatchImportResult{
		Created: []models.CreatedListing{},
		Errors:  []models.ItemError{},
	}
	for i, doc := range docs {
		outcome, err := s.importOne(ctx, doc, rates, opts)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, models.ItemError{Index: i + 1, Source: doc.Source, Error: err.Error()})
		case outcome.Errors != nil:
			result.Errors = append(result.Errors, models.ItemError{Index: i + 1, Source: doc.Source, Errors: outcome.Errors})
		default:
			result.Created = append(result.Created, outcome.Summary())
		}
	}

	logger.GlobalLogger.Printf("Batch import finished: client=%s, documents=%d, created=%d, failed=%d",
		clientKey, len(docs), len(result.Created), len(result.Errors))
	return result, nil
}

// ImportFromURL fetches a remote page and imports it. An invalid URL is a
// field error in the outcome; a failed fetch is a *SourceFetchError.
func (s *ImportService) ImportFromURL(ctx context.Context, clientKey, rawURL string, opts models.ImportOptions) (*models.ImportOutcome, error) {
	if err := s.guard(clientKey); err != nil {
		return nil, err
	}

	rawURL = strings.TrimSpace(rawURL)
	if err := s.validator.ValidateSourceURL(rawURL); err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			metrics.ImportsTotal.WithLabelValues("invalid").Inc()
			return &models.ImportOutcome{Errors: verr.Fields}, nil
		}
		return nil, err
	}
	if s.fetcher == nil {
		return nil, &apperrors.SourceFetchError{URL: rawURL, Err: errors.New("remote fetching is not configured")}
	}

	content, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("fetch_failed").Inc()
		fetchErr := &apperrors.SourceFetchError{URL: rawURL, Err: err}
		var httpErr *fetcher.HTTPError
		if errors.As(err, &httpErr) {
			fetchErr.StatusCode = httpErr.StatusCode
			fetchErr.Err = httpErr.Err
		}
		return nil, fetchErr
	}

	rates := s.rates.GetRates(ctx, false)
	return s.importOne(ctx, models.RawDocument{Source: rawURL, Content: content}, rates, opts)
}

func (s *ImportService) guard(clientKey string) error {
	if s.throttle == nil {
		return nil
	}
	if !s.throttle.Allow(cache.ImportThrottleKey(clientKey)) {
		metrics.ImportsTotal.WithLabelValues("throttled").Inc()
		logger.GlobalLogger.Warnf("Import throttled: client=%s", clientKey)
		return apperrors.ErrThrottled
	}
	return nil
}

func (s *ImportService) importOne(ctx context.Context, doc models.RawDocument, rates models.ExchangeRates, opts models.ImportOptions) (*models.ImportOutcome, error) {
	parsed, err := s.transformer.Transform(ctx, doc, rates, opts)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("unreadable").Inc()
		logger.GlobalLogger.Errorf("Import failed: source=%s, error=%v", doc.Source, err)
		return nil, err
	}

	listing := buildListing(parsed)
	if err := s.validator.ValidateListing(listing); err != nil {
		var verr *apperrors.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		metrics.ImportsTotal.WithLabelValues("invalid").Inc()
		logger.GlobalLogger.Warnf("Import rejected: source=%s, %v", doc.Source, verr)
		return &models.ImportOutcome{Errors: verr.Fields, Warnings: parsed.Warnings}, nil
	}

	if err := s.persist(ctx, listing, parsed); err != nil {
		metrics.ImportsTotal.WithLabelValues("save_failed").Inc()
		logger.GlobalLogger.Errorf("Import save failed: source=%s, error=%v", doc.Source, err)
		return &models.ImportOutcome{Errors: map[string]string{"save": err.Error()}, Warnings: parsed.Warnings}, nil
	}

	warnings := append([]string{}, parsed.Warnings...)
	if s.images != nil {
		warnings = append(warnings, s.images.TransferImages(ctx, listing.ID, parsed.MainImageURL, parsed.Gallery)...)
	}

	metrics.ImportsTotal.WithLabelValues("created").Inc()
	logger.GlobalLogger.Printf("Imported listing: id=%s, source=%s, warnings=%d", listing.ID, doc.Source, len(warnings))
	return &models.ImportOutcome{Listing: listing, Warnings: warnings}, nil
}

// persist resolves the classification entities and inserts the listing.
func (s *ImportService) persist(ctx context.Context, listing *models.Listing, parsed *models.ParsedListing) error {
	if parsed.PropertyType != "" {
		pt, err := s.taxonomy.GetOrCreatePropertyType(ctx, parsed.PropertyType)
		if err != nil {
			return fmt.Errorf("property type: %w", err)
		}
		listing.PropertyTypeID = pt.ID
	}
	if parsed.DealType != "" {
		dt, err := s.taxonomy.GetOrCreateDealType(ctx, parsed.DealType)
		if err != nil {
			return fmt.Errorf("deal type: %w", err)
		}
		listing.DealTypeID = dt.ID
	}
	return s.listings.Create(ctx, listing)
}

func buildListing(parsed *models.ParsedListing) *models.Listing {
	listing := &models.Listing{
		Slug:            listingSlug(parsed.Title),
		Title:           parsed.Title,
		Address:         parsed.Address,
		Description:     parsed.Description,
		DescriptionHTML: parsed.DescriptionHTML,
		Price:           parsed.Price,
		SourceCurrency:  parsed.SourceCurrency,
		Area:            parsed.Area,
		Rooms:           parsed.Rooms,
		SourceLabel:     parsed.Source,
	}
	if c := parsed.Coordinates; c != nil {
		lat, lon := c.Latitude, c.Longitude
		listing.Latitude = &lat
		listing.Longitude = &lon
		if c.Valid() {
			listing.Geohash = geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
		}
	}
	return listing
}

func listingSlug(title string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	base := repositories.Slugify(title)
	if base == "" {
		return "listing-" + suffix
	}
	if r := []rune(base); len(r) > 60 {
		base = strings.Trim(string(r[:60]), "-")
	}
	return base + "-" + suffix
}
