// Package cache provides a small in-memory key value cache with a TTL.
// Callers own their cache instances; computation layers stay uncached.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache stores values of one type keyed by string. Expired entries are
// dropped lazily on access.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[T]
}

// New creates a cache whose entries expire ttl after they are set.
// A non-positive ttl means entries never expire.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key, or false when the key is absent
// or its entry has expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !cached.expiresAt.IsZero() && !c.now().Before(cached.expiresAt) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return cached.value, true
}

// Set stores value under key, resetting its TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = entry[T]{value: value, expiresAt: expiresAt}
}

// Delete removes key from the cache.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// GetOrLoad returns the cached value for key, calling load and caching
// its result on a miss. A load error is returned without caching.
func (c *Cache[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}
