package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"dominium-listings/internal/models"
	"dominium-listings/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	propertyTypesCollection = "property_types"
	dealTypesCollection     = "deal_types"
)

type taxonomyRepository struct {
	propertyTypes *mongo.Collection
	dealTypes     *mongo.Collection
}

func NewTaxonomyRepository(db *mongo.Database) TaxonomyRepository {
	return &taxonomyRepository{
		propertyTypes: db.Collection(propertyTypesCollection),
		dealTypes:     db.Collection(dealTypesCollection),
	}
}

// TaxonomyKey is the lookup key of a classification name.
func TaxonomyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Slugify turns a classification name into a URL-safe slug.
func Slugify(name string) string {
	fields := strings.FieldsFunc(TaxonomyKey(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}

func (r *taxonomyRepository) GetOrCreatePropertyType(ctx context.Context, name string) (*models.PropertyType, error) {
	key := TaxonomyKey(name)
	onInsert := bson.M{
		"_id":  primitive.NewObjectID().Hex(),
		"name": strings.TrimSpace(name),
		"slug": Slugify(name),
	}
	var pt models.PropertyType
	if err := r.upsert(ctx, r.propertyTypes, propertyTypesCollection, key, onInsert, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *taxonomyRepository) GetOrCreateDealType(ctx context.Context, name string) (*models.DealType, error) {
	key := TaxonomyKey(name)
	onInsert := bson.M{
		"_id":  primitive.NewObjectID().Hex(),
		"name": strings.TrimSpace(name),
	}
	var dt models.DealType
	if err := r.upsert(ctx, r.dealTypes, dealTypesCollection, key, onInsert, &dt); err != nil {
		return nil, err
	}
	return &dt, nil
}

// upsert returns the document with the given key, inserting onInsert when it
// does not exist yet. Concurrent callers converge on the same document
// through the unique index on key.
func (r *taxonomyRepository) upsert(ctx context.Context, coll *mongo.Collection, name, key string, onInsert bson.M, dest interface{}) error {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	start := time.Now()
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"key": key},
		bson.M{"$setOnInsert": onInsert},
		opts,
	).Decode(dest)
	utils.RecordMongoOperationDuration("upsert", name, start)
	if err != nil {
		utils.RecordMongoError("upsert", name)
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}
