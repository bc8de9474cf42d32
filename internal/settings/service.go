package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

type settingsRepository interface {
	Find(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, row *models.Settings) (*models.Settings, error)
}

var recordKey = cache.Key{Domain: enums.CacheDomainSettings, ID: "record"}

// Service is the server side of the settings gateway.
type Service interface {
	Get(ctx context.Context) (ThemeSettings, error)
	Update(ctx context.Context, patch Patch) (ThemeSettings, error)
}

type service struct {
	mu    sync.Mutex
	repo  settingsRepository
	cache *cache.Cache[any]
	logg  *logger.Logger
}

// NewService constructs the settings service. cache may be nil.
func NewService(repo settingsRepository, records *cache.Cache[any], logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: records, logg: logg}, nil
}

// Get loads the row, creating it from Defaults on first access.
func (s *service) Get(ctx context.Context) (ThemeSettings, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(recordKey); ok {
			if record, ok := cached.(ThemeSettings); ok {
				return record.Clone(), nil
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.loadOrCreate(ctx)
	if err != nil {
		return ThemeSettings{}, err
	}
	if s.cache != nil {
		s.cache.Set(recordKey, record.Clone(), 0)
	}
	return record, nil
}

// Update merges patch onto the stored row and returns the effective record.
func (s *service) Update(ctx context.Context, patch Patch) (ThemeSettings, error) {
	if err := patch.Validate(); err != nil {
		return ThemeSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadOrCreate(ctx)
	if err != nil {
		return ThemeSettings{}, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	merged := current.Apply(patch)
	saved, err := s.repo.Upsert(ctx, ToModel(merged))
	if err != nil {
		return ThemeSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save settings")
	}
	if s.cache != nil {
		s.cache.InvalidateDomain(enums.CacheDomainSettings)
	}
	s.logg.Info(ctx, "settings updated")
	return FromModel(*saved), nil
}

func (s *service) loadOrCreate(ctx context.Context) (ThemeSettings, error) {
	row, err := s.repo.Find(ctx)
	if err != nil {
		return ThemeSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load settings")
	}
	if row != nil {
		return FromModel(*row), nil
	}

	created, err := s.repo.Upsert(ctx, ToModel(Defaults()))
	if err != nil {
		return ThemeSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create default settings")
	}
	s.logg.Info(ctx, "default settings created")
	return FromModel(*created), nil
}

// LocalGateway adapts Service to the Gateway contract for in-process stores.
type LocalGateway struct {
	svc Service
}

// NewLocalGateway wraps svc.
func NewLocalGateway(svc Service) *LocalGateway {
	return &LocalGateway{svc: svc}
}

func (g *LocalGateway) FetchSettings(ctx context.Context) (Patch, error) {
	record, err := g.svc.Get(ctx)
	if err != nil {
		return Patch{}, err
	}
	return record.AsPatch(), nil
}

func (g *LocalGateway) SaveSettings(ctx context.Context, record ThemeSettings) (Patch, error) {
	saved, err := g.svc.Update(ctx, record.AsPatch())
	if err != nil {
		return Patch{}, err
	}
	return saved.AsPatch(), nil
}
