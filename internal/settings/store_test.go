package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.ttl = ttl
	return nil
}

func (m *memCache) decoded(t *testing.T) ThemeSettings {
	t.Helper()
	raw, ok := m.Get(context.Background(), CacheKey)
	require.True(t, ok, "expected cached settings")
	var out ThemeSettings
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type fakeGateway struct {
	mu        sync.Mutex
	remote    Patch
	fetchErr  error
	saveErr   error
	saved     []ThemeSettings
	fetchGate chan struct{}
	fetching  chan struct{}
	saveGate  chan struct{}
	saving    chan struct{}
}

func (f *fakeGateway) FetchSettings(ctx context.Context) (Patch, error) {
	if f.fetching != nil {
		close(f.fetching)
	}
	if f.fetchGate != nil {
		<-f.fetchGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remote, f.fetchErr
}

func (f *fakeGateway) SaveSettings(_ context.Context, record ThemeSettings) (Patch, error) {
	if f.saving != nil {
		close(f.saving)
	}
	if f.saveGate != nil {
		<-f.saveGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return Patch{}, f.saveErr
	}
	f.saved = append(f.saved, record)
	return record.AsPatch(), nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestStoreUsableBeforeLoad(t *testing.T) {
	s := NewStore(nil, nil, testLogger())
	assert.False(t, s.Initialized())
	assert.Equal(t, Defaults(), s.Current())

	got, done := s.Update(context.Background(), Patch{ShopName: Ptr("X")})
	assert.Equal(t, "X", got.ShopName)
	_, open := <-done
	assert.False(t, open, "no gateway means the signal closes immediately")
}

func TestLoadPrecedenceDefaultsCacheRemote(t *testing.T) {
	cache := newMemCache()
	cached, _ := json.Marshal(Patch{BannerText: Ptr("cached banner"), ShopName: Ptr("cached name")})
	cache.data[CacheKey] = cached

	gw := &fakeGateway{remote: Patch{ShopName: Ptr("remote name"), OrderLink: Ptr("https://t.me/shop")}}
	s := NewStore(gw, cache, testLogger(), WithCacheTTL(time.Hour))

	got := s.Load(context.Background())
	assert.Equal(t, "remote name", got.ShopName)
	assert.Equal(t, "cached banner", got.BannerText)
	assert.Equal(t, "https://t.me/shop", got.OrderLink)
	assert.Equal(t, "black", got.BackgroundColor)
	assert.True(t, s.Initialized())

	assert.Equal(t, got, cache.decoded(t), "merged result is written back to the cache")
	assert.Equal(t, time.Hour, cache.ttl)
}

func TestLoadIsIdempotent(t *testing.T) {
	cache := newMemCache()
	gw := &fakeGateway{remote: Patch{ShopName: Ptr("remote")}}
	s := NewStore(gw, cache, testLogger())

	first := s.Load(context.Background())
	firstRaw, _ := json.Marshal(first)
	second := s.Load(context.Background())
	secondRaw, _ := json.Marshal(second)
	assert.Equal(t, string(firstRaw), string(secondRaw))
}

func TestLoadRemoteFailureKeepsCacheState(t *testing.T) {
	cache := newMemCache()
	cached, _ := json.Marshal(Patch{ShopName: Ptr("cached")})
	cache.data[CacheKey] = cached

	gw := &fakeGateway{fetchErr: errors.New("network down")}
	s := NewStore(gw, cache, testLogger())

	got := s.Load(context.Background())
	assert.Equal(t, "cached", got.ShopName)
	assert.True(t, s.Initialized())
}

func TestLoadMalformedCacheIsMiss(t *testing.T) {
	cache := newMemCache()
	cache.data[CacheKey] = []byte("{broken")
	gw := &fakeGateway{fetchErr: errors.New("down")}
	s := NewStore(gw, cache, testLogger())

	assert.Equal(t, Defaults(), s.Load(context.Background()))

	cache.data[CacheKey] = []byte(`{"backgroundType":"video"}`)
	assert.Equal(t, Defaults(), s.Load(context.Background()), "invalid enum values read as a miss")
}

func TestUpdateIsOptimisticAndPersists(t *testing.T) {
	cache := newMemCache()
	gw := &fakeGateway{}
	s := NewStore(gw, cache, testLogger())

	got, done := s.Update(context.Background(), Patch{ShopName: Ptr("X")})
	assert.Equal(t, "X", got.ShopName)
	assert.Equal(t, "black", got.BackgroundColor)
	assert.Equal(t, "X", s.Current().ShopName, "visible immediately")
	assert.Equal(t, "X", cache.decoded(t).ShopName, "cache written synchronously")

	err, open := <-done
	assert.NoError(t, err)
	if open {
		_, open = <-done
	}
	assert.False(t, open)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Len(t, gw.saved, 1)
	assert.Equal(t, "X", gw.saved[0].ShopName)
}

func TestUpdateRemoteFailureIsSignalledWithoutRollback(t *testing.T) {
	gw := &fakeGateway{saveErr: errors.New("503")}
	s := NewStore(gw, newMemCache(), testLogger())

	_, done := s.Update(context.Background(), Patch{BannerText: Ptr("SALE")})
	select {
	case err := <-done:
		assert.EqualError(t, err, "503")
	case <-time.After(time.Second):
		t.Fatal("expected failure signal")
	}
	assert.Equal(t, "SALE", s.Current().BannerText)
}

func TestUpdateSurvivesRequestCancellation(t *testing.T) {
	gw := &fakeGateway{}
	s := NewStore(gw, nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	_, done := s.Update(ctx, Patch{ShopName: Ptr("Z")})
	cancel()
	<-done
	s.Wait()

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Len(t, gw.saved, 1)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	gw := &fakeGateway{
		remote:    Patch{ShopName: Ptr("stale remote")},
		fetchGate: make(chan struct{}),
		fetching:  make(chan struct{}),
	}
	cache := newMemCache()
	s := NewStore(gw, cache, testLogger())

	loaded := make(chan ThemeSettings, 1)
	go func() { loaded <- s.Load(context.Background()) }()
	<-gw.fetching

	_, done := s.Update(context.Background(), Patch{ShopName: Ptr("newer patch")})
	close(gw.fetchGate)
	<-done
	s.Wait()

	got := <-loaded
	assert.Equal(t, "newer patch", got.ShopName)
	assert.Equal(t, "newer patch", s.Current().ShopName)
	assert.Equal(t, "newer patch", cache.decoded(t).ShopName)
}

func TestLoadDuringPendingSaveKeepsPatch(t *testing.T) {
	gw := &fakeGateway{
		remote:   Patch{ShopName: Ptr("HIDDEN SPINGFIELD")},
		saveGate: make(chan struct{}),
		saving:   make(chan struct{}),
	}
	cache := newMemCache()
	s := NewStore(gw, cache, testLogger())

	_, done := s.Update(context.Background(), Patch{ShopName: Ptr("NEW NAME")})
	<-gw.saving

	got := s.Load(context.Background())
	assert.Equal(t, "NEW NAME", got.ShopName, "pending patch re-applied over the fetched record")
	assert.Equal(t, "NEW NAME", cache.decoded(t).ShopName)

	close(gw.saveGate)
	require.NoError(t, <-done)
	s.Wait()

	assert.Equal(t, "NEW NAME", s.Current().ShopName)
	assert.Equal(t, "NEW NAME", cache.decoded(t).ShopName)
}

func TestFetchOutlivedBySaveIsDiscarded(t *testing.T) {
	gw := &fakeGateway{
		remote:    Patch{ShopName: Ptr("before save")},
		fetchGate: make(chan struct{}),
		fetching:  make(chan struct{}),
		saveGate:  make(chan struct{}),
		saving:    make(chan struct{}),
	}
	cache := newMemCache()
	s := NewStore(gw, cache, testLogger())

	_, done := s.Update(context.Background(), Patch{ShopName: Ptr("saved name")})
	<-gw.saving

	loaded := make(chan ThemeSettings, 1)
	go func() { loaded <- s.Load(context.Background()) }()
	<-gw.fetching

	close(gw.saveGate)
	require.NoError(t, <-done)
	close(gw.fetchGate)

	assert.Equal(t, "saved name", (<-loaded).ShopName)
	s.Wait()
	assert.Equal(t, "saved name", s.Current().ShopName)
	assert.Equal(t, "saved name", cache.decoded(t).ShopName)
}

type slowCache struct {
	*memCache
	gate    chan struct{}
	writing chan struct{}
}

func (c *slowCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.writing != nil {
		close(c.writing)
		c.writing = nil
		<-c.gate
	}
	return c.memCache.Set(ctx, key, value, ttl)
}

func TestCacheWriteDoesNotBlockReaders(t *testing.T) {
	cache := &slowCache{memCache: newMemCache(), gate: make(chan struct{}), writing: make(chan struct{})}
	writing := cache.writing
	s := NewStore(nil, cache, testLogger())

	updated := make(chan struct{})
	go func() {
		s.Update(context.Background(), Patch{ShopName: Ptr("slow")})
		close(updated)
	}()
	<-writing

	read := make(chan string, 1)
	go func() { read <- s.Current().ShopName }()
	select {
	case name := <-read:
		assert.Equal(t, "slow", name)
	case <-time.After(time.Second):
		t.Fatal("Current blocked on the cache write")
	}
	close(cache.gate)
	<-updated
}
