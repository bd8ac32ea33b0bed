package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"dominium-listings/internal/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "listing_photos"

// GridFSStore keeps images in a MongoDB GridFS bucket.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %v", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

func (s *GridFSStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	id, err := s.bucket.UploadFromStream(SafeName(name), bytes.NewReader(data))
	utils.RecordMongoOperationDuration("upload", bucketName, start)
	if err != nil {
		utils.RecordMongoError("upload", bucketName)
		return "", fmt.Errorf("failed to upload image: %v", err)
	}
	return "gridfs:" + id.Hex(), nil
}
