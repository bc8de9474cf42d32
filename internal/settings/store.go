package settings

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// CacheKey is the local cache key of the merged settings blob.
const CacheKey = "theme-settings"

// DefaultCacheTTL keeps the last-known record around for a month.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Gateway is the remote source of truth for the settings record.
type Gateway interface {
	FetchSettings(ctx context.Context) (Patch, error)
	SaveSettings(ctx context.Context, record ThemeSettings) (Patch, error)
}

// LocalCache stores the last-known settings blob.
type LocalCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store holds one ThemeSettings record and reconciles it with the local cache
// and the remote gateway. Reads always see the latest local state.
//
// Every Load and Update takes a new request token. A remote fetch is only
// applied when its token is still the latest and no save completed while it
// was in flight. Patches whose save is still running are re-applied on top of
// any fetched record, so a Load never undoes an optimistic Update.
type Store struct {
	mu          sync.RWMutex
	current     ThemeSettings
	initialized bool
	token       uint64
	lastUpdate  uint64
	saves       uint64
	version     uint64
	inflight    map[uint64]Patch

	cacheMu      sync.Mutex
	cacheVersion uint64

	gateway  Gateway
	cache    LocalCache
	cacheTTL time.Duration
	logg     *logger.Logger
	wg       sync.WaitGroup
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewStore returns a store seeded with Defaults. cache may be nil.
func NewStore(gateway Gateway, cache LocalCache, logg *logger.Logger, opts ...StoreOption) *Store {
	s := &Store{
		current:  Defaults(),
		inflight: map[uint64]Patch{},
		gateway:  gateway,
		cache:    cache,
		cacheTTL: DefaultCacheTTL,
		logg:     logg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a copy of the in-memory record.
func (s *Store) Current() ThemeSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Initialized reports whether Load has completed at least once.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Load overlays the cached blob, then the remote record, onto the current
// state and writes the merged result back to the cache. Remote failures are
// logged and leave the cache-or-default state in place.
func (s *Store) Load(ctx context.Context) ThemeSettings {
	s.mu.Lock()
	s.token++
	token := s.token
	startVersion := s.version
	startSaves := s.saves
	s.mu.Unlock()

	if cached, ok := s.readCache(ctx); ok {
		s.mu.Lock()
		if s.version == startVersion {
			s.current = s.current.Apply(cached)
		}
		s.mu.Unlock()
	}

	if s.gateway == nil {
		s.finishLoad()
		return s.Current()
	}

	remote, err := s.gateway.FetchSettings(ctx)
	if err != nil {
		s.warn(ctx, "settings fetch failed, keeping local state", err)
		s.finishLoad()
		return s.Current()
	}

	s.mu.Lock()
	s.initialized = true
	if token != s.token || s.saves != startSaves {
		out := s.current.Clone()
		s.mu.Unlock()
		s.debug(ctx, "discarding stale settings fetch")
		return out
	}
	s.current = s.current.Apply(remote)
	for _, id := range s.pendingIDs() {
		s.current = s.current.Apply(s.inflight[id])
	}
	version, snapshot := s.bump()
	s.mu.Unlock()

	s.writeCache(ctx, version, snapshot)
	return snapshot.Clone()
}

// Update merges patch immediately, writes the cache and persists the merged
// record in the background. The returned channel yields at most one error and
// is closed once the remote write finishes. Local state is never rolled back.
func (s *Store) Update(ctx context.Context, patch Patch) (ThemeSettings, <-chan error) {
	done := make(chan error, 1)

	s.mu.Lock()
	s.token++
	token := s.token
	s.lastUpdate = token
	s.current = s.current.Apply(patch)
	version, merged := s.bump()
	if s.gateway != nil {
		s.inflight[token] = patch
	}
	s.mu.Unlock()

	s.writeCache(ctx, version, merged)

	if s.gateway == nil {
		close(done)
		return merged.Clone(), done
	}

	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)

		saved, err := s.gateway.SaveSettings(bg, merged)

		s.mu.Lock()
		delete(s.inflight, token)
		if err != nil {
			s.mu.Unlock()
			s.warn(bg, "settings save failed, local state kept", err)
			done <- err
			return
		}
		s.saves++
		if token != s.lastUpdate {
			s.mu.Unlock()
			return
		}
		s.current = s.current.Apply(saved)
		version, snapshot := s.bump()
		s.mu.Unlock()

		s.writeCache(bg, version, snapshot)
	}()

	return merged.Clone(), done
}

// bump records a local mutation. Callers hold s.mu.
func (s *Store) bump() (uint64, ThemeSettings) {
	s.version++
	return s.version, s.current.Clone()
}

// pendingIDs lists in-flight update tokens oldest first. Callers hold s.mu.
func (s *Store) pendingIDs() []uint64 {
	ids := make([]uint64, 0, len(s.inflight))
	for id := range s.inflight {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Wait blocks until every background save has finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) finishLoad() {
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
}

// readCache decodes the cached blob. A malformed blob is a miss.
func (s *Store) readCache(ctx context.Context) (Patch, bool) {
	if s.cache == nil {
		return Patch{}, false
	}
	raw, ok := s.cache.Get(ctx, CacheKey)
	if !ok {
		return Patch{}, false
	}
	var cached Patch
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.debug(ctx, "ignoring malformed settings cache entry")
		return Patch{}, false
	}
	if err := cached.Validate(); err != nil {
		s.debug(ctx, "ignoring invalid settings cache entry")
		return Patch{}, false
	}
	return cached, true
}

// writeCache stores record unless a newer version was already written.
func (s *Store) writeCache(ctx context.Context, version uint64, record ThemeSettings) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if version <= s.cacheVersion {
		return
	}
	s.cacheVersion = version
	raw, err := json.Marshal(record)
	if err != nil {
		s.warn(ctx, "encode settings cache entry", err)
		return
	}
	if err := s.cache.Set(ctx, CacheKey, raw, s.cacheTTL); err != nil {
		s.warn(ctx, "write settings cache entry", err)
	}
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.WarnErr(ctx, msg, err)
	}
}

func (s *Store) debug(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Debug(ctx, msg)
	}
}
