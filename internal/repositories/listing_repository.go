package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const listingsCollection = "listings"

// listingDocument stores the price as Decimal128 so no precision is lost.
type listingDocument struct {
	models.Listing `bson:",inline"`
	Price          primitive.Decimal128 `bson:"price"`
}

type listingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) ListingRepository {
	return &listingRepository{
		collection: db.Collection(listingsCollection),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	price, err := primitive.ParseDecimal128(listing.Price.String())
	if err != nil {
		return fmt.Errorf("invalid price %s: %v", listing.Price, err)
	}
	if listing.ID == "" {
		listing.ID = primitive.NewObjectID().Hex()
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err = r.collection.InsertOne(ctx, listingDocument{Listing: *listing, Price: price})
	utils.RecordMongoOperationDuration("insert_one", listingsCollection, start)
	if err != nil {
		utils.RecordMongoError("insert_one", listingsCollection)
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	start := time.Now()
	var doc listingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	utils.RecordMongoOperationDuration("find_one", listingsCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.RecordMongoError("find_one", listingsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	listing := doc.Listing
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for listing %s: %v", id, err)
	}
	listing.Price = price
	return &listing, nil
}
