package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/jjview/internal/log"
)

const (
	DefaultExpiration      = 30 * time.Second
	DefaultCleanupInterval = 5 * time.Minute
)

// InMemoryCache is a Cache backed by go-cache. It is safe for concurrent use.
type InMemoryCache[V any] struct {
	name  string
	cache *gocache.Cache
}

var _ Cache[string] = (*InMemoryCache[string])(nil)

// NewInMemoryCache creates a cache. name only appears in log lines.
func NewInMemoryCache[V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCache[V] {
	return &InMemoryCache[V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an unexpired item by key.
func (c *InMemoryCache[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	value, found := c.cache.Get(key)
	if !found {
		log.Debug(log.CatCache, "cache miss", "cache", c.name, "key", key)
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.name, "key", key)
		return zero, false
	}
	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", key)
	return v, true
}

// Set stores value under key. A zero ttl uses the default expiration.
func (c *InMemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete removes the given keys.
func (c *InMemoryCache[V]) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Flush removes every item.
func (c *InMemoryCache[V]) Flush(context.Context) {
	log.Debug(log.CatCache, "cache flushed", "cache", c.name, "items", c.cache.ItemCount())
	c.cache.Flush()
}

// ItemCount returns the number of items, including expired ones not yet
// cleaned up.
func (c *InMemoryCache[V]) ItemCount() int {
	return c.cache.ItemCount()
}
