package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dominium-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client as a CacheOperations store.
func NewRedisStore(client *redis.Client) CacheOperations {
	return &redisStore{client: client}
}

// store a value in the cache with the given key and expiration time.
func (s *redisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		IncrementError("set_marshal")
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return NewCacheError("marshal", key, err, false)
	}
	err = s.client.Set(ctx, key, data, expiration).Err()
	RecordOperationDuration("set", time.Since(start).Seconds())
	if err != nil {
		IncrementError("set")
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return NewCacheError("set", key, err, true)
	}
	return nil
}

// retrieve a value from the cache and unmarshal it into dest.
func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	RecordOperationDuration("get", time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		IncrementError("get")
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return NewCacheError("get", key, err, true)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		IncrementError("get_unmarshal")
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return NewCacheError("unmarshal", key, err, false)
	}
	return nil
}

// remove a key from the cache.
func (s *redisStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.client.Del(ctx, key).Err()
	RecordOperationDuration("delete", time.Since(start).Seconds())
	if err != nil {
		IncrementError("delete")
		logger.GlobalLogger.Errorf("failed to delete key %s: %v", key, err)
		return NewCacheError("delete", key, err, true)
	}
	return nil
}

// check if a key exists in the cache.
func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	count, err := s.client.Exists(ctx, key).Result()
	RecordOperationDuration("exists", time.Since(start).Seconds())
	if err != nil {
		IncrementError("exists")
		logger.GlobalLogger.Errorf("failed to check existence of key %s: %v", key, err)
		return false, NewCacheError("exists", key, err, true)
	}
	return count > 0, nil
}
