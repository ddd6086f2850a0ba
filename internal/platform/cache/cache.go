// Package cache provides a small in-memory TTL cache.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value T
	exp   time.Time
}

// Cache maps string keys to values with a per-entry expiry. Safe for
// concurrent use by request handlers.
type Cache[T any] struct {
	mu   sync.RWMutex
	data map[string]entry[T]
}

// New returns an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{data: make(map[string]entry[T])}
}

// Get returns the cached value, or false if it is absent or expired.
// Expired entries are dropped on read.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	item, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}

	if time.Now().After(item.exp) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()

		var zero T
		return zero, false
	}

	return item.value, true
}

// Set stores a value under key for the given TTL.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.data[key] = entry[T]{value: value, exp: time.Now().Add(ttl)}
	c.mu.Unlock()
}
