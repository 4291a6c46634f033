package cachemanager

import (
	"context"
	"time"
)

// LoadFunc produces the value for key on a cache miss.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

// ReadThrough serves values from a Cache and loads missing ones.
// A non-positive ttl disables caching and always loads.
type ReadThrough[V any] struct {
	cache Cache[V]
	load  LoadFunc[V]
	ttl   time.Duration
}

// NewReadThrough wraps cache with load.
func NewReadThrough[V any](cache Cache[V], load LoadFunc[V], ttl time.Duration) *ReadThrough[V] {
	return &ReadThrough[V]{cache: cache, load: load, ttl: ttl}
}

// Get returns the cached value for key or loads and stores it.
// Load errors are returned and nothing is stored.
func (r *ReadThrough[V]) Get(ctx context.Context, key string) (V, error) {
	if r.ttl <= 0 {
		return r.load(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx, key)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Refresh drops key and loads it again.
func (r *ReadThrough[V]) Refresh(ctx context.Context, key string) (V, error) {
	r.cache.Delete(ctx, key)
	return r.Get(ctx, key)
}

// Invalidate drops every cached value, typically after the repository
// changed underneath.
func (r *ReadThrough[V]) Invalidate(ctx context.Context) {
	r.cache.Flush(ctx)
}
