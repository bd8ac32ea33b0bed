package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgTaxonomyRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTaxonomyRepository(pool *pgxpool.Pool) TaxonomyRepository {
	return &pgTaxonomyRepository{pool: pool}
}

// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *pgTaxonomyRepository) GetOrCreatePropertyType(ctx context.Context, name string) (*models.PropertyType, error) {
	pt := models.PropertyType{Key: TaxonomyKey(name)}

	start := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO property_types (id, name, name_key, slug) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name_key) DO UPDATE SET name_key = EXCLUDED.name_key
		RETURNING id, name, slug`,
		uuid.NewString(), strings.TrimSpace(name), pt.Key, Slugify(name),
	).Scan(&pt.ID, &pt.Name, &pt.Slug)
	utils.RecordPostgresOperationDuration("upsert", "property_types", start)
	if err != nil {
		utils.RecordPostgresError("upsert", "property_types")
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &pt, nil
}

func (r *pgTaxonomyRepository) GetOrCreateDealType(ctx context.Context, name string) (*models.DealType, error) {
	dt := models.DealType{Key: TaxonomyKey(name)}

	start := time.Now()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO deal_types (id, name, name_key) VALUES ($1, $2, $3)
		ON CONFLICT (name_key) DO UPDATE SET name_key = EXCLUDED.name_key
		RETURNING id, name`,
		uuid.NewString(), strings.TrimSpace(name), dt.Key,
	).Scan(&dt.ID, &dt.Name)
	utils.RecordPostgresOperationDuration("upsert", "deal_types", start)
	if err != nil {
		utils.RecordPostgresError("upsert", "deal_types")
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &dt, nil
}
