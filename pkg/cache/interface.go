package cache

import (
	"context"
	"time"
)

// CacheOperations is the JSON value store used by the rate cache. Get
// returns ErrCacheMiss for absent keys.
type CacheOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
