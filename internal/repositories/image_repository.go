package repositories

import (
	"context"
	"fmt"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const imagesCollection = "listing_images"

type imageRepository struct {
	collection *mongo.Collection
}

func NewImageRepository(db *mongo.Database) ImageRepository {
	return &imageRepository{
		collection: db.Collection(imagesCollection),
	}
}

func (r *imageRepository) Create(ctx context.Context, image *models.ListingImage) error {
	if image.ID == "" {
		image.ID = primitive.NewObjectID().Hex()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, image)
	utils.RecordMongoOperationDuration("insert_one", imagesCollection, start)
	if err != nil {
		utils.RecordMongoError("insert_one", imagesCollection)
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

func (r *imageRepository) FindByListing(ctx context.Context, listingID string) ([]models.ListingImage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID}, findOptions)
	utils.RecordMongoOperationDuration("find", imagesCollection, start)
	if err != nil {
		utils.RecordMongoError("find", imagesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer cursor.Close(ctx)

	images := []models.ListingImage{}
	if err := cursor.All(ctx, &images); err != nil {
		utils.RecordMongoError("decode", imagesCollection)
		return nil, fmt.Errorf("failed to decode images: %v", err)
	}
	return images, nil
}
