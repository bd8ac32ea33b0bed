package geocoder

import (
	"sync"

	"dominium-listings/internal/models"
)

type cacheKey struct {
	address string
	agent   string
}

// Cache memoizes successful lookups per address and agent identity.
type Cache struct {
	entries map[cacheKey]models.Coordinates
	mu      sync.RWMutex
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]models.Coordinates)}
}

func (c *Cache) Get(address, agent string) (*models.Coordinates, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coords, ok := c.entries[cacheKey{address, agent}]
	if !ok {
		return nil, false
	}
	return &coords, true
}

func (c *Cache) Put(address, agent string, coords models.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{address, agent}] = coords
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
