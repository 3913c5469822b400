// Package cache provides a bounded, TTL-based, content-hash-keyed cache
// for detection and translation results. A miss is never an error; only
// successful results are ever inserted by callers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTTL      = time.Hour
	DefaultCapacity = 10_000
)

// Options configures one cache instance. Zero values fall back to the
// defaults; Now exists so tests can control time.
type Options struct {
	TTL      time.Duration
	Capacity int
	Now      func() time.Time
}

// Stats reports cache occupancy.
type Stats struct {
	Size int `json:"size"`
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a mutex-protected map with TTL expiry and oldest-first
// eviction on capacity overflow. Safe for concurrent use; concurrent
// writers to the same key are last-writer-wins.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	order    []string
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

func New[V any](opts Options) *Cache[V] {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V], capacity),
		order:    make([]string, 0, capacity),
		ttl:      ttl,
		capacity: capacity,
		now:      now,
	}
}

// Key hashes the given parts into a cache key.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key when present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(item.insertedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return item.value, true
}

// Put inserts or replaces the value for key, evicting the oldest entries
// when the cache is full.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.capacity {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	c.order = append(c.order, key)
	if len(c.order) > 4*c.capacity {
		c.compactOrderLocked()
	}
}

// compactOrderLocked drops stale keys accumulated by replacements,
// keeping the first occurrence of each live key.
func (c *Cache[V]) compactOrderLocked() {
	seen := make(map[string]struct{}, len(c.entries))
	compacted := c.order[:0]
	for _, key := range c.order {
		if _, live := c.entries[key]; !live {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		compacted = append(compacted, key)
	}
	c.order = compacted
}

// EvictExpired removes all expired entries and returns how many were
// dropped.
func (c *Cache[V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, item := range c.entries {
		if now.Sub(item.insertedAt) > c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Stats returns current occupancy.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.entries)}
}

// evictOldestLocked drops the oldest still-present entry. The order queue
// may hold stale keys from replaced or expired entries; those are skipped.
func (c *Cache[V]) evictOldestLocked() {
	for len(c.order) > 0 {
		key := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			return
		}
	}
	// Order queue drained without a hit; drop an arbitrary entry so Put
	// always makes room.
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
