package database

import (
	"context"
	"fmt"
	"time"

	"dominium-listings/pkg/config"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

var PgPool *pgxpool.Pool

// schema is applied on start; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS property_types (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		name_key TEXT NOT NULL UNIQUE,
		slug     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deal_types (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		name_key TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id               TEXT PRIMARY KEY,
		slug             TEXT NOT NULL UNIQUE,
		title            TEXT NOT NULL,
		address          TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		description_html TEXT NOT NULL DEFAULT '',
		price            NUMERIC(14, 2) NOT NULL CHECK (price >= 0),
		source_currency  TEXT NOT NULL DEFAULT '',
		area             DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (area >= 0),
		rooms            INTEGER NOT NULL DEFAULT 1 CHECK (rooms >= 1),
		property_type_id TEXT REFERENCES property_types (id),
		deal_type_id     TEXT REFERENCES deal_types (id),
		latitude         DOUBLE PRECISION,
		longitude        DOUBLE PRECISION,
		geohash          TEXT NOT NULL DEFAULT '',
		source_label     TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS listings_geohash_idx ON listings (geohash)`,
	`CREATE TABLE IF NOT EXISTS listing_images (
		id          TEXT PRIMARY KEY,
		listing_id  TEXT NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
		source_url  TEXT NOT NULL,
		storage_ref TEXT NOT NULL,
		is_main     BOOLEAN NOT NULL DEFAULT false,
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS listing_images_listing_idx ON listing_images (listing_id, position)`,
}

// InitPostgres opens the pool, pings it and applies the schema.
func InitPostgres(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to parse postgres dsn: %v", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	start := time.Now()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err == nil {
		err = pool.Ping(ctx)
	}
	metrics.PostgresOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PostgresErrorsTotal.WithLabelValues("connect", "").Inc()
		if pool != nil {
			pool.Close()
		}
		logger.GlobalLogger.Errorf("failed to connect to Postgres: %v", err)
		return fmt.Errorf("failed to connect to Postgres: %v", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	PgPool = pool
	logger.GlobalLogger.Println("Postgres connected successfully.")
	return nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	start := time.Now()
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			metrics.PostgresErrorsTotal.WithLabelValues("migrate", "").Inc()
			return fmt.Errorf("failed to apply schema: %v", err)
		}
	}
	metrics.PostgresOperationDuration.WithLabelValues("migrate", "").Observe(time.Since(start).Seconds())
	return nil
}

func ClosePostgres() {
	if PgPool != nil {
		PgPool.Close()
		logger.GlobalLogger.Println("Postgres connection closed")
	}
}
