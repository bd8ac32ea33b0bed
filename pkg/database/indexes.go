package database

import (
	"context"
	"time"

	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSet lists the indexes one collection needs.
type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

var listingIndexes = []indexSet{
	{
		collection: "listings",
		models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "geohash", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "created_at", Value: -1}},
			},
		},
	},
	{
		collection: "listing_images",
		models: []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "position", Value: 1}},
			},
		},
	},
	{
		collection: "property_types",
		models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "key", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	},
	{
		collection: "deal_types",
		models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "key", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	},
}

// create the indexes used by listing imports. The unique taxonomy keys make
// concurrent get-or-create calls converge on one document.
func CreateListingIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, set := range listingIndexes {
		start := time.Now()
		_, err := db.Collection(set.collection).Indexes().CreateMany(ctx, set.models)
		duration := time.Since(start).Seconds()
		metrics.MongoOperationDuration.WithLabelValues("create_indexes", set.collection).Observe(duration)
		if err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("create_indexes", set.collection).Inc()
			logger.GlobalLogger.Errorf("Failed to create indexes on %s: %v", set.collection, err)
			return err
		}
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
