package repositories

import (
	"context"
	"fmt"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgImageRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &pgImageRepository{pool: pool}
}

func (r *pgImageRepository) Create(ctx context.Context, img *models.ListingImage) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO listing_images (id, listing_id, source_url, storage_ref, is_main, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		img.ID, img.ListingID, img.SourceURL, img.StorageRef, img.IsMain, img.Position, img.CreatedAt,
	)
	utils.RecordPostgresOperationDuration("insert", "listing_images", start)
	if err != nil {
		utils.RecordPostgresError("insert", "listing_images")
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

func (r *pgImageRepository) FindByListing(ctx context.Context, listingID string) ([]models.ListingImage, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, `
		SELECT id, listing_id, source_url, storage_ref, is_main, position, created_at
		FROM listing_images WHERE listing_id = $1 ORDER BY position`, listingID)
	utils.RecordPostgresOperationDuration("select", "listing_images", start)
	if err != nil {
		utils.RecordPostgresError("select", "listing_images")
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer rows.Close()

	images := []models.ListingImage{}
	for rows.Next() {
		var img models.ListingImage
		if err := rows.Scan(&img.ID, &img.ListingID, &img.SourceURL, &img.StorageRef, &img.IsMain, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %v", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		utils.RecordPostgresError("select", "listing_images")
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return images, nil
}
