package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
)

// Mirror snapshots a whole cart under one well-known name per session.
type Mirror interface {
	Load(ctx context.Context, session string) ([]Line, bool, error)
	Save(ctx context.Context, session string, lines []Line) error
	Delete(ctx context.Context, session string) error
}

// DefaultMirrorTTL bounds how long an untouched in-process snapshot is kept.
const DefaultMirrorTTL = 7 * 24 * time.Hour

const minSweepSize = 1024

// MemoryMirror keeps snapshots in process with a sliding TTL. Used when Redis is
// not configured. Expired snapshots read as a miss and are pruned as the map grows.
type MemoryMirror struct {
	mu        sync.Mutex
	snapshots map[string]cache.Entry[[]byte]
	ttl       time.Duration
	now       func() time.Time
	sweepAt   int
}

// MemoryMirrorOption configures a MemoryMirror.
type MemoryMirrorOption func(*MemoryMirror)

// WithMirrorTTL overrides DefaultMirrorTTL.
func WithMirrorTTL(ttl time.Duration) MemoryMirrorOption {
	return func(m *MemoryMirror) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMirrorClock swaps the time source, for tests.
func WithMirrorClock(now func() time.Time) MemoryMirrorOption {
	return func(m *MemoryMirror) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemoryMirror returns an empty in-process mirror.
func NewMemoryMirror(opts ...MemoryMirrorOption) *MemoryMirror {
	m := &MemoryMirror{
		snapshots: make(map[string]cache.Entry[[]byte]),
		ttl:       DefaultMirrorTTL,
		now:       time.Now,
		sweepAt:   minSweepSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryMirror) Load(_ context.Context, session string) ([]Line, bool, error) {
	m.mu.Lock()
	entry, ok := m.snapshots[session]
	if ok && entry.Expired(m.now()) {
		delete(m.snapshots, session)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	return decodeSnapshot(entry.Value)
}

func (m *MemoryMirror) Save(_ context.Context, session string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.snapshots[session] = cache.Entry[[]byte]{Value: raw, WrittenAt: now, ExpiresAt: now.Add(m.ttl)}
	if len(m.snapshots) >= m.sweepAt {
		m.sweep(now)
	}
	return nil
}

func (m *MemoryMirror) Delete(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, session)
	return nil
}

// Len reports how many snapshots are held, expired ones included.
func (m *MemoryMirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

// sweep drops expired snapshots. Callers hold m.mu.
func (m *MemoryMirror) sweep(now time.Time) {
	for session, entry := range m.snapshots {
		if entry.Expired(now) {
			delete(m.snapshots, session)
		}
	}
	m.sweepAt = max(2*len(m.snapshots), minSweepSize)
}

// KV is the subset of the Redis client used by RedisMirror.
type KV interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(session string) string
}

// RedisMirror stores each session snapshot as one JSON value with a sliding TTL.
type RedisMirror struct {
	kv  KV
	ttl time.Duration
}

// NewRedisMirror builds a mirror over kv. Every save refreshes ttl.
func NewRedisMirror(kv KV, ttl time.Duration) *RedisMirror {
	return &RedisMirror{kv: kv, ttl: ttl}
}

func (r *RedisMirror) Load(ctx context.Context, session string) ([]Line, bool, error) {
	raw, ok, err := r.kv.GetBytes(ctx, r.kv.CartKey(session))
	if err != nil {
		return nil, false, fmt.Errorf("load cart snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return decodeSnapshot(raw)
}

func (r *RedisMirror) Save(ctx context.Context, session string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := r.kv.Set(ctx, r.kv.CartKey(session), raw, r.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (r *RedisMirror) Delete(ctx context.Context, session string) error {
	if err := r.kv.Del(ctx, r.kv.CartKey(session)); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}

// decodeSnapshot treats a malformed snapshot as absent.
func decodeSnapshot(raw []byte) ([]Line, bool, error) {
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, false, nil
	}
	return lines, true, nil
}
