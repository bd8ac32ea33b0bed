package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process CacheOperations used when Redis is disabled.
// Values go through JSON so reads behave like the Redis store.
type MemoryStore struct {
	store map[string]memoryEntry
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (c *MemoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return NewCacheError("marshal", key, err, false)
	}
	entry := memoryEntry{data: data}
	if expiration > 0 {
		entry.expiresAt = c.now().Add(expiration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = entry
	return nil
}

func (c *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if !ok || c.expired(entry) {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return NewCacheError("unmarshal", key, err, false)
	}
	return nil
}

func (c *MemoryStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.store[key]
	return ok && !c.expired(entry), nil
}

func (c *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt)
}
