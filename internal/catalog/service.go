// Package catalog serves storefront products from the database with the
// built-in list as fallback.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

const listCacheID = "list"

type productRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service exposes the catalog to the storefront and the admin.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	mu    sync.Mutex
	repo  productRepository
	cache *cache.Cache[any]
	logg  *logger.Logger
}

// NewService builds the database-backed catalog. records may be nil.
func NewService(repo productRepository, records *cache.Cache[any], logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: records, logg: logg}, nil
}

// List returns the database catalog newest first. An empty table or a
// database failure yields the built-in catalog.
func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	return applyFilters(s.all(ctx), filters), nil
}

func (s *service) all(ctx context.Context) []models.Product {
	key := cache.Key{Domain: enums.CacheDomainProducts, ID: listCacheID}
	if cached, ok := s.cacheGet(key); ok {
		if products, ok := cached.([]models.Product); ok {
			return products
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logg.WarnErr(ctx, "catalog list failed, serving static products", err)
		return StaticProducts()
	}
	if len(rows) == 0 {
		s.logg.Debug(ctx, "catalog empty, serving static products")
		rows = StaticProducts()
	}
	s.cacheSet(key, rows)
	return rows
}

// Get looks the product up in the database, then in the built-in catalog.
func (s *service) Get(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	key := cache.Key{Domain: enums.CacheDomainProducts, ID: id}
	if cached, ok := s.cacheGet(key); ok {
		if product, ok := cached.(models.Product); ok {
			out := cloneProduct(product)
			return &out, nil
		}
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logg.WarnErr(ctx, "catalog lookup failed, trying static products", err)
	}
	if row == nil {
		static, ok := StaticProduct(id)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		row = &static
	}
	if err == nil {
		s.cacheSet(key, cloneProduct(*row))
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	product := input.toModel()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created, err := s.repo.Create(ctx, &product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create product")
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID), "product created")
	return created, nil
}

// Update patches a stored product. A built-in product that is not stored yet
// is created from its static data merged with the patch.
func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	persist := s.repo.Save
	if row == nil {
		static, ok := StaticProduct(id)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		row = &static
		persist = s.repo.Create
	}

	updated := input.applyTo(*row)
	if err := validateProduct(updated); err != nil {
		return nil, err
	}
	saved, err := persist(ctx, &updated)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "product updated")
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "product deleted")
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	n := s.cache.InvalidateDomain(enums.CacheDomainProducts)
	s.logg.Debug(s.logg.WithField(ctx, "evicted", n), "products cache invalidated")
}

func (s *service) cacheGet(key cache.Key) (any, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *service) cacheSet(key cache.Key, value any) {
	if s.cache != nil {
		s.cache.Set(key, value, 0)
	}
}
