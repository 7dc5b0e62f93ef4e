package httpx

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a narrow TTL cache: string key to cached value, single-flight
// deduplicated on miss. Grounded on dmitrymomot-forge's
// pkg/cache/cache.go (generic Cache[V] interface, singleflight-backed
// GetOrSet) and pkg/cache/memory.go (map + mutex storage), adapted into a
// single concrete type rather than an interface with swappable backends —
// this module only ever needs one cache shape (the planner adapter's
// person-by-email and role lookups), not a pluggable Redis/memory pair.
type Cache[V any] struct {
	mu    sync.Mutex
	items map[string]cacheEntry[V]
	ttl   time.Duration
	sf    singleflight.Group
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewCache returns a Cache with the given default TTL.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]cacheEntry[V]),
		ttl:   ttl,
	}
}

// Get returns the cached value and true, or the zero value and false if
// absent or expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value under the cache's configured TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry[V]{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete evicts a key, used when an upstream write invalidates a cached
// read (e.g. a planner person upsert invalidating its by-email entry).
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// GetOrLoad returns the cached value for key, or calls fn on a miss.
// Concurrent misses for the same key are deduplicated via singleflight so
// only one fn call reaches the upstream.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}

	result := v.(V)
	c.Set(key, result)
	return result, nil
}
