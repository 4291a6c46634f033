// Package cachemanager provides TTL caches for jj query results that are
// cheap to reuse between refreshes, such as `jj log` output per revset.
//
// `jj show` output is not cached here; see detailcache, which evicts by
// change identity instead of time.
package cachemanager

import (
	"context"
	"time"
)

// Cache stores values by string key with a per-entry TTL.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
	ItemCount() int
}
