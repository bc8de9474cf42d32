package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingObserver struct {
	hits, misses, evictions, invalidations int
}

func (r *recordingObserver) Hit(string)        { r.hits++ }
func (r *recordingObserver) Miss(string)       { r.misses++ }
func (r *recordingObserver) Evict(string)      { r.evictions++ }
func (r *recordingObserver) Invalidate(string) { r.invalidations++ }

func newTestCache(t *testing.T) (*Cache[string], *fakeClock, *recordingObserver) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	obs := &recordingObserver{}
	return New[string](WithClock(clock.Now), WithObserver(obs)), clock, obs
}

func TestGetReturnsLiveValue(t *testing.T) {
	c, _, obs := newTestCache(t)
	key := Key{Domain: enums.CacheDomainProducts, ID: "1"}

	c.Set(key, "cali spain", 0)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "cali spain", got)
	assert.Equal(t, 1, obs.hits)
}

func TestExpiredReadEvictsAndMisses(t *testing.T) {
	c, clock, obs := newTestCache(t)
	key := Key{Domain: enums.CacheDomainProducts, ID: "1"}

	c.Set(key, "v", time.Minute)
	clock.Advance(time.Minute)
	_, ok := c.Get(key)
	assert.True(t, ok, "an entry read exactly at its deadline is still live")

	clock.Advance(time.Nanosecond)
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 1, obs.evictions)
	assert.Equal(t, 0, c.Stats().Total, "expired entry must be evicted on read")
}

func TestDefaultTTLAppliesToNonPositiveTTL(t *testing.T) {
	c, clock, _ := newTestCache(t)
	key := Key{Domain: enums.CacheDomainSettings}

	c.Set(key, "theme", -1)
	clock.Advance(DefaultTTL - time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestInvalidateDomainOnlyTouchesThatDomain(t *testing.T) {
	c, _, obs := newTestCache(t)
	c.Set(Key{Domain: enums.CacheDomainProducts}, "list", 0)
	c.Set(Key{Domain: enums.CacheDomainProducts, ID: "1"}, "one", 0)
	c.Set(Key{Domain: enums.CacheDomainCategories}, "cats", 0)

	removed := c.InvalidateDomain(enums.CacheDomainProducts)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, obs.invalidations)

	_, ok := c.Get(Key{Domain: enums.CacheDomainCategories})
	assert.True(t, ok)
	_, ok = c.Get(Key{Domain: enums.CacheDomainProducts, ID: "1"})
	assert.False(t, ok)
}

func TestStatsCountsExpiredWithoutEvicting(t *testing.T) {
	c, clock, _ := newTestCache(t)
	c.Set(Key{Domain: enums.CacheDomainProducts, ID: "short"}, "a", time.Second)
	c.Set(Key{Domain: enums.CacheDomainProducts, ID: "long"}, "b", time.Hour)
	clock.Advance(2 * time.Second)

	assert.Equal(t, Stats{Total: 2, Expired: 1, Active: 1}, c.Stats())
	assert.Equal(t, Stats{Total: 2, Expired: 1, Active: 1}, c.Stats(), "stats must not evict")
}

func TestDeleteAndClear(t *testing.T) {
	c, _, _ := newTestCache(t)
	key := Key{Domain: enums.CacheDomainCategories, ID: "x"}
	c.Set(key, "v", 0)
	c.Delete(key)
	c.Delete(key)
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, "v", 0)
	c.Clear()
	assert.Equal(t, 0, c.Stats().Total)
}

func TestGetOrLoad(t *testing.T) {
	c, _, _ := newTestCache(t)
	key := Key{Domain: enums.CacheDomainProducts}
	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrLoad(key, 0, load)
		require.NoError(t, err)
		assert.Equal(t, "loaded", got)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("db down")
	_, err := c.GetOrLoad(Key{Domain: enums.CacheDomainCategories}, 0, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(Key{Domain: enums.CacheDomainCategories})
	assert.False(t, ok, "failed loads must not be cached")
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key{Domain: enums.CacheDomainProducts, ID: string(rune('a' + i))}
			c.Set(key, i, 0)
			c.Get(key)
			c.Stats()
			if i%4 == 0 {
				c.InvalidateDomain(enums.CacheDomainProducts)
			}
		}(i)
	}
	wg.Wait()
}

func TestBlobCacheCopiesAndRejectsForeignValues(t *testing.T) {
	shared := New[any]()
	blobs := NewBlobCache(shared, enums.CacheDomainSettings)
	ctx := context.Background()

	value := []byte(`{"shopName":"A"}`)
	require.NoError(t, blobs.Set(ctx, "theme", value, 0))
	value[2] = 'X'

	got, ok := blobs.Get(ctx, "theme")
	require.True(t, ok)
	assert.Equal(t, `{"shopName":"A"}`, string(got))

	shared.Set(Key{Domain: enums.CacheDomainSettings, ID: "theme"}, 42, 0)
	_, ok = blobs.Get(ctx, "theme")
	assert.False(t, ok, "a non-blob value reads as a miss")

	require.NoError(t, blobs.Set(ctx, "theme", []byte("{}"), 0))
	shared.InvalidateDomain(enums.CacheDomainSettings)
	_, ok = blobs.Get(ctx, "theme")
	assert.False(t, ok)
}
