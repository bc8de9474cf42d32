// Package cache implements a small expiring key/value map partitioned by cache
// domain. Expiry is lazy: an entry read after its deadline is evicted and
// reported as a miss. Nothing runs in the background.
package cache

import (
	"sync"
	"time"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// DefaultTTL applies when Set is called with a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// Key addresses one entry. ID may be empty for domain-wide values such as a list.
type Key struct {
	Domain enums.CacheDomain
	ID     string
}

// Entry pairs a value with its write time and absolute expiry.
type Entry[T any] struct {
	Value     T
	WrittenAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is dead at now.
func (e Entry[T]) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Stats summarizes the entries currently held.
type Stats struct {
	Total   int `json:"total"`
	Expired int `json:"expired"`
	Active  int `json:"active"`
}

// Observer receives hit/miss/eviction notifications, typically metrics.
type Observer interface {
	Hit(domain string)
	Miss(domain string)
	Evict(domain string)
	Invalidate(domain string)
}

type noopObserver struct{}

func (noopObserver) Hit(string)        {}
func (noopObserver) Miss(string)       {}
func (noopObserver) Evict(string)      {}
func (noopObserver) Invalidate(string) {}

// Option configures a Cache.
type Option func(*options)

type options struct {
	ttl      time.Duration
	now      func() time.Time
	observer Observer
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithObserver attaches an Observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// Cache is safe for concurrent use.
type Cache[T any] struct {
	mu       sync.Mutex
	entries  map[Key]Entry[T]
	ttl      time.Duration
	now      func() time.Time
	observer Observer
}

// New constructs an empty cache.
func New[T any](opts ...Option) *Cache[T] {
	o := options{ttl: DefaultTTL, now: time.Now, observer: noopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		entries:  make(map[Key]Entry[T]),
		ttl:      o.ttl,
		now:      o.now,
		observer: o.observer,
	}
}

// Get returns the live value at key.
func (c *Cache[T]) Get(key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	entry, ok := c.entries[key]
	if !ok {
		c.observer.Miss(key.Domain.String())
		return zero, false
	}
	if entry.Expired(c.now()) {
		delete(c.entries, key)
		c.observer.Evict(key.Domain.String())
		c.observer.Miss(key.Domain.String())
		return zero, false
	}
	c.observer.Hit(key.Domain.String())
	return entry.Value, true
}

// Set stores value at key. A non-positive ttl uses the cache default.
func (c *Cache[T]) Set(key Key, value T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry[T]{Value: value, WrittenAt: now, ExpiresAt: now.Add(ttl)}
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors from load are returned as-is and nothing is cached.
func (c *Cache[T]) GetOrLoad(key Key, ttl time.Duration, load func() (T, error)) (T, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	c.Set(key, value, ttl)
	return value, nil
}

// Delete removes key. Missing keys are ignored.
func (c *Cache[T]) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateDomain removes every entry of domain and returns how many were dropped.
func (c *Cache[T]) InvalidateDomain(domain enums.CacheDomain) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if key.Domain == domain {
			delete(c.entries, key)
			removed++
		}
	}
	c.observer.Invalidate(domain.String())
	return removed
}

// Clear drops everything.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]Entry[T])
}

// Stats counts entries without evicting expired ones.
func (c *Cache[T]) Stats() Stats {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Total: len(c.entries)}
	for _, entry := range c.entries {
		if entry.Expired(now) {
			stats.Expired++
		}
	}
	stats.Active = stats.Total - stats.Expired
	return stats
}
