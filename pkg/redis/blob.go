package redis

import (
	"context"
	"time"
)

// BlobCache adapts Client to the byte-oriented local cache contract used by the
// settings store. Keys are namespaced under the cache prefix.
type BlobCache struct {
	client *Client
}

// NewBlobCache wraps client.
func NewBlobCache(client *Client) *BlobCache {
	return &BlobCache{client: client}
}

// Get returns the blob stored under key. Transport errors read as a miss.
func (b *BlobCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := b.client.GetBytes(ctx, b.client.CacheKey(key))
	if err != nil {
		return nil, false
	}
	return value, ok
}

// Set stores value under key with ttl.
func (b *BlobCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, b.client.CacheKey(key), value, ttl)
}

// Delete removes key.
func (b *BlobCache) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.client.CacheKey(key))
}
