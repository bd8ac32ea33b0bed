package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type pgListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &pgListingRepository{pool: pool}
}

func (r *pgListingRepository) Create(ctx context.Context, l *models.Listing) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO listings (id, slug, title, address, description, description_html, price,
			source_currency, area, rooms, property_type_id, deal_type_id, latitude, longitude,
			geohash, source_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		l.ID, l.Slug, l.Title, l.Address, l.Description, l.DescriptionHTML, l.Price.String(),
		l.SourceCurrency, l.Area, l.Rooms, nullable(l.PropertyTypeID), nullable(l.DealTypeID),
		l.Latitude, l.Longitude, l.Geohash, l.SourceLabel, l.CreatedAt,
	)
	utils.RecordPostgresOperationDuration("insert", "listings", start)
	if err != nil {
		utils.RecordPostgresError("insert", "listings")
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

func (r *pgListingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var (
		l            models.Listing
		price        string
		propertyType *string
		dealType     *string
	)

	start := time.Now()
	err := r.pool.QueryRow(ctx, `
		SELECT id, slug, title, address, description, description_html, price::text,
			source_currency, area, rooms, property_type_id, deal_type_id, latitude, longitude,
			geohash, source_label, created_at
		FROM listings WHERE id = $1`, id,
	).Scan(&l.ID, &l.Slug, &l.Title, &l.Address, &l.Description, &l.DescriptionHTML, &price,
		&l.SourceCurrency, &l.Area, &l.Rooms, &propertyType, &dealType, &l.Latitude, &l.Longitude,
		&l.Geohash, &l.SourceLabel, &l.CreatedAt)
	utils.RecordPostgresOperationDuration("select", "listings", start)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		utils.RecordPostgresError("select", "listings")
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	if l.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("invalid stored price for listing %s: %v", id, err)
	}
	if propertyType != nil {
		l.PropertyTypeID = *propertyType
	}
	if dealType != nil {
		l.DealTypeID = *dealType
	}
	return &l, nil
}

// nullable maps an empty foreign key to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
