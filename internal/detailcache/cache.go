// Package detailcache keeps `jj show` output for the commits in the log.
//
// Eviction follows change identity rather than recency. SetActive declares
// which heads are visible; anything cached that is not one of them becomes
// stale. A stale entry is still served for its change until fresh output for
// that change is inserted, at which point it is dropped. Editing a change
// rebases its descendants, so this keeps the detail panel filled during the
// rebase without letting old versions of a commit pile up.
//
// A Cache is owned by one goroutine (the Bubble Tea update loop) and has no
// internal locking.
package detailcache

import (
	"errors"
	"fmt"

	"github.com/zjrosen/jjview/internal/jj"
	"github.com/zjrosen/jjview/internal/log"
)

// ErrKeyMismatch is returned by GetOrInsert when compute produced a value
// for a different key than requested.
var ErrKeyMismatch = errors.New("computed value does not match requested key")

// CacheMetrics tracks cache performance statistics.
type CacheMetrics struct {
	Hits            uint64 // exact matches
	StaleHits       uint64 // served from a stale entry of the same change
	Misses          uint64 // nothing usable cached
	Computes        uint64 // compute calls made by GetOrInsert
	ComputeFailures uint64 // compute calls that returned an error
	Evictions       uint64 // values dropped when fresh content arrived
}

// HitRate returns the exact hit rate as a percentage (0-100).
// Returns 0 if no lookups have been made.
func (m CacheMetrics) HitRate() float64 {
	total := m.Hits + m.StaleHits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

type entry struct {
	value *Value
	seq   uint64
}

// Cache maps keys to rendered jj output.
type Cache struct {
	active map[jj.ChangeID]map[Key]struct{}
	stale  map[jj.ChangeID]Key
	store  map[Key]entry

	seq     uint64
	metrics CacheMetrics
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		active: make(map[jj.ChangeID]map[Key]struct{}),
		stale:  make(map[jj.ChangeID]Key),
		store:  make(map[Key]entry),
	}
}

// SetActive rebuilds the active and stale sets. Every head is substituted
// into template to form an active key. Each cached key that is not active
// is recorded as the stale entry of its change; when several qualify, the
// most recently inserted one wins. Nothing is evicted here.
func (c *Cache) SetActive(heads []jj.Head, template Key) {
	c.active = make(map[jj.ChangeID]map[Key]struct{}, len(heads))
	for _, head := range heads {
		key := template.WithHead(head)
		keys, ok := c.active[head.ChangeID]
		if !ok {
			keys = make(map[Key]struct{}, 1)
			c.active[head.ChangeID] = keys
		}
		keys[key] = struct{}{}
	}

	c.stale = make(map[jj.ChangeID]Key)
	for key, e := range c.store {
		if c.isActive(key) {
			continue
		}
		change := key.Change()
		if prev, ok := c.stale[change]; ok && c.store[prev].seq > e.seq {
			continue
		}
		c.stale[change] = key
	}

	log.Debug(log.CatCache, "Active set rebuilt",
		"heads", len(heads),
		"changes", len(c.active),
		"stale", len(c.stale),
		"stored", len(c.store),
		"bytes", c.ByteSize())
}

func (c *Cache) isActive(key Key) bool {
	_, ok := c.active[key.Change()][key]
	return ok
}

// HasExact reports whether a value is stored under exactly key.
func (c *Cache) HasExact(key Key) bool {
	_, ok := c.store[key]
	return ok
}

// Get returns the value stored under key, or else the stale value of the
// same change. The bool is false when neither exists.
func (c *Cache) Get(key Key) (*Value, bool) {
	if e, ok := c.store[key]; ok {
		c.metrics.Hits++
		return e.value, true
	}
	if staleKey, ok := c.stale[key.Change()]; ok {
		if e, ok := c.store[staleKey]; ok {
			c.metrics.StaleHits++
			return e.value, true
		}
	}
	c.metrics.Misses++
	return nil, false
}

// Insert stores v under its key. If v's change has a stale entry, that
// entry and any other inactive values of the change are dropped first.
func (c *Cache) Insert(v *Value) {
	key := v.Key()
	change := key.Change()

	if _, ok := c.stale[change]; ok {
		for stored := range c.store {
			if stored == key || stored.Change() != change || c.isActive(stored) {
				continue
			}
			delete(c.store, stored)
			c.metrics.Evictions++
			log.Debug(log.CatCache, "Evicted superseded detail", "key", stored.String())
		}
		delete(c.stale, change)
	}

	c.seq++
	c.store[key] = entry{value: v, seq: c.seq}
}

// GetOrInsert returns the value stored under exactly key, calling compute
// to produce it on a miss. compute runs at most once per key while the key
// stays cached. Errors from compute are returned and nothing is inserted.
// compute must return a value for key; anything else yields ErrKeyMismatch
// and leaves the cache untouched.
func (c *Cache) GetOrInsert(key Key, compute func() (*Value, error)) (*Value, error) {
	if e, ok := c.store[key]; ok {
		c.metrics.Hits++
		return e.value, nil
	}

	c.metrics.Misses++
	c.metrics.Computes++
	v, err := compute()
	if err != nil {
		c.metrics.ComputeFailures++
		return nil, err
	}
	if v == nil || v.Key() != key {
		c.metrics.ComputeFailures++
		got := "<nil>"
		if v != nil {
			got = v.Key().String()
		}
		return nil, fmt.Errorf("%w: want %s, got %s", ErrKeyMismatch, key, got)
	}

	c.Insert(v)
	return v, nil
}

// Len returns the number of stored values.
func (c *Cache) Len() int {
	return len(c.store)
}

// Stale returns the number of changes with a stale entry.
func (c *Cache) Stale() int {
	return len(c.stale)
}

// ByteSize returns the total size of stored output.
func (c *Cache) ByteSize() int {
	total := 0
	for _, e := range c.store {
		total += e.value.Text().Len()
	}
	return total
}

// Metrics returns a copy of the current cache metrics.
func (c *Cache) Metrics() CacheMetrics {
	return c.metrics
}
