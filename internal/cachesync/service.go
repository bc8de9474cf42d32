// Package cachesync applies admin-side change notifications to the shared
// server cache.
package cachesync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// Request is a single sync notification.
type Request struct {
	Type   enums.CacheDomain `json:"type" validate:"required"`
	Action enums.SyncAction  `json:"action" validate:"required"`
	Data   json.RawMessage   `json:"data,omitempty"`
}

// Result acknowledges a sync.
type Result struct {
	Type        enums.CacheDomain `json:"type"`
	Action      enums.SyncAction  `json:"action"`
	Invalidated int               `json:"invalidated"`
	Seeded      bool              `json:"seeded"`
	Timestamp   time.Time         `json:"timestamp"`
}

// StatsReport is the cache summary served to the admin.
type StatsReport struct {
	cache.Stats
	Domains   []enums.CacheDomain `json:"domains"`
	Timestamp time.Time           `json:"timestamp"`
}

// Service applies sync notifications.
type Service interface {
	Sync(ctx context.Context, req Request) (Result, error)
	Stats(ctx context.Context) StatsReport
}

type service struct {
	cache  *cache.Cache[any]
	reload func(context.Context)
	logg   *logger.Logger
	now    func() time.Time
}

// Option configures the sync service.
type Option func(*service)

// WithSettingsReload runs fn after every settings sync, typically to reload
// the process settings store from its gateway.
func WithSettingsReload(fn func(context.Context)) Option {
	return func(s *service) {
		s.reload = fn
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the sync service to the shared cache.
func NewService(records *cache.Cache[any], logg *logger.Logger, opts ...Option) (Service, error) {
	if records == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &service{cache: records, logg: logg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Sync(ctx context.Context, req Request) (Result, error) {
	if !req.Type.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sync type").
			WithDetails(map[string]any{"type": req.Type})
	}
	if !req.Action.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sync action").
			WithDetails(map[string]any{"action": req.Action})
	}

	res := Result{Type: req.Type, Action: req.Action}
	switch req.Type {
	case enums.CacheDomainProducts:
		res.Invalidated = s.cache.InvalidateDomain(enums.CacheDomainProducts)
		if upserts(req.Action) {
			res.Seeded = seed[models.Product](s.cache, enums.CacheDomainProducts, req.Data, func(p models.Product) string { return p.ID })
		}
	case enums.CacheDomainCategories:
		res.Invalidated = s.cache.InvalidateDomain(enums.CacheDomainCategories)
		res.Invalidated += s.cache.InvalidateDomain(enums.CacheDomainProducts)
		if upserts(req.Action) {
			res.Seeded = seed[models.Category](s.cache, enums.CacheDomainCategories, req.Data, func(c models.Category) string { return c.ID })
		}
	case enums.CacheDomainSettings:
		res.Invalidated = s.cache.InvalidateDomain(enums.CacheDomainSettings)
		if s.reload != nil {
			s.reload(ctx)
		}
	}
	res.Timestamp = s.now().UTC()

	ctx = s.logg.WithFields(ctx, map[string]any{
		"type":        req.Type.String(),
		"action":      req.Action.String(),
		"invalidated": res.Invalidated,
	})
	s.logg.Info(ctx, "cache synchronized")
	return res, nil
}

func (s *service) Stats(_ context.Context) StatsReport {
	return StatsReport{
		Stats:     s.cache.Stats(),
		Domains:   enums.CacheDomains(),
		Timestamp: s.now().UTC(),
	}
}

func upserts(action enums.SyncAction) bool {
	return action == enums.SyncActionCreate || action == enums.SyncActionUpdate
}

// seed caches the record carried by a create/update notification under its id.
func seed[T any](records *cache.Cache[any], domain enums.CacheDomain, data json.RawMessage, id func(T) string) bool {
	if len(data) == 0 {
		return false
	}
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return false
	}
	key := id(record)
	if key == "" {
		return false
	}
	records.Set(cache.Key{Domain: domain, ID: key}, record, 0)
	return true
}
