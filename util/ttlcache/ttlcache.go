// Package ttlcache provides a small concurrency-safe cache with per-entry
// time-to-live and an LRU capacity bound.
package ttlcache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
)

const defaultCapacity = 1024

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache maps keys to values that expire ttl after they were stored. Expired
// entries are treated as absent on read and swept by PurgeExpired. The LRU
// underneath caps total entries so the cache cannot grow without bound.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	ttl time.Duration
	lru *lru.LRU[K, entry[V]]
	now func() time.Time
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithClock overrides the time source. Tests use this to simulate expiry.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) { c.now = now }
}

func New[K comparable, V any](ttl time.Duration, capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	l, _ := lru.NewLRU[K, entry[V]](capacity, nil)
	c := &Cache[K, V]{ttl: ttl, lru: l, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the value for k if present and not expired.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.lru.Get(k)
	if !ok {
		return zero, false
	}
	if c.expired(e) {
		c.lru.Remove(k)
		return zero, false
	}
	return e.value, true
}

// Put stores v under k with a fresh timestamp, replacing any previous entry.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(k, entry[V]{value: v, fetchedAt: c.now()})
}

// GetOrFetch returns the cached value for k, calling fetch on a miss. A
// successful fetch is stored; a failed fetch is returned to the caller and
// never cached, so the next call retries. fetch runs without the cache lock
// held since it usually performs network I/O.
func (c *Cache[K, V]) GetOrFetch(k K, fetch func() (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(k, v)
	return v, nil
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (c *Cache[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, k := range c.lru.Keys() {
		if e, ok := c.lru.Peek(k); ok && c.expired(e) {
			c.lru.Remove(k)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries, expired ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *Cache[K, V]) expired(e entry[V]) bool {
	return c.now().Sub(e.fetchedAt) >= c.ttl
}
