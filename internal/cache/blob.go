package cache

import (
	"context"
	"time"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// BlobCache exposes a Cache of raw bytes through the keyed string contract used
// by the settings store. Every key lives in the settings domain so a settings
// invalidation also drops it.
type BlobCache struct {
	cache  *Cache[any]
	domain enums.CacheDomain
}

// NewBlobCache wraps c. Values are copied on the way in and out.
func NewBlobCache(c *Cache[any], domain enums.CacheDomain) *BlobCache {
	return &BlobCache{cache: c, domain: domain}
}

// Get returns the blob stored at key.
func (b *BlobCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, ok := b.cache.Get(Key{Domain: b.domain, ID: key})
	if !ok {
		return nil, false
	}
	raw, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// Set stores value at key.
func (b *BlobCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	b.cache.Set(Key{Domain: b.domain, ID: key}, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes key.
func (b *BlobCache) Delete(_ context.Context, key string) error {
	b.cache.Delete(Key{Domain: b.domain, ID: key})
	return nil
}
