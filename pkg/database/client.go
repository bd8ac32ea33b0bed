package database

import (
	"context"
	"fmt"
	"time"

	"dominium-listings/pkg/config"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

const mongoTimeout = 10 * time.Second

// observe times a client-level Mongo call under op.
func observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.MongoOperationDuration.WithLabelValues(op, "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues(op, "").Inc()
	}
	return err
}

// InitDB connects to MongoDB, selects the listing database and ensures its
// indexes exist.
func InitDB(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(mongoTimeout).
		SetMaxPoolSize(uint64(max(cfg.Database.MaxConns, 1)) * 8).
		SetAppName("dominium-listings")

	var client *mongo.Client
	if err := observe("connect", func() (err error) {
		client, err = mongo.Connect(ctx, opts)
		return err
	}); err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := observe("ping", func() error { return client.Ping(ctx, nil) }); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database.DBName)
	if err := CreateListingIndexes(db); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	MongoClient, DB = client, db
	logger.GlobalLogger.Printf("MongoDB connected, database %q", cfg.Database.DBName)
	return nil
}

// CloseDB disconnects the shared client, if any.
func CloseDB() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := observe("disconnect", func() error { return MongoClient.Disconnect(ctx) }); err != nil {
		logger.GlobalLogger.Errorf("Error closing MongoDB: %v", err)
		return
	}
	MongoClient, DB = nil, nil
	logger.GlobalLogger.Println("MongoDB connection closed")
}
