// Package categories manages the storefront menu categories.
package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/pkg/db"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// DefaultOrder is assigned when a category is created without an order.
const DefaultOrder = 1

var listKey = cache.Key{Domain: enums.CacheDomainCategories, ID: "list"}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateCategoryInput is the admin payload for a new category.
type CreateCategoryInput struct {
	Name   string `json:"name" validate:"required,max=80"`
	Slug   string `json:"slug" validate:"omitempty,max=80"`
	Icon   string `json:"icon" validate:"max=64"`
	Order  int    `json:"order" validate:"min=0"`
	Active *bool  `json:"active"`
}

// UpdateCategoryInput is a partial category. Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name   *string `json:"name" validate:"omitempty,max=80"`
	Slug   *string `json:"slug" validate:"omitempty,max=80"`
	Icon   *string `json:"icon" validate:"omitempty,max=64"`
	Order  *int    `json:"order" validate:"omitempty,min=0"`
	Active *bool   `json:"active"`
}

// Service exposes category administration.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  categoryRepository
	cache *cache.Cache[any]
	logg  *logger.Logger
}

// NewService wires the category service. records may be nil.
func NewService(repo categoryRepository, records *cache.Cache[any], logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: records, logg: logg}, nil
}

// List returns categories by order. A database failure yields an empty list.
func (s *service) List(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(listKey); ok {
			if rows, ok := cached.([]models.Category); ok {
				return append([]models.Category(nil), rows...), nil
			}
		}
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logg.WarnErr(ctx, "category list failed, serving empty list", err)
		return []models.Category{}, nil
	}
	if rows == nil {
		rows = []models.Category{}
	}
	if s.cache != nil {
		s.cache.Set(listKey, append([]models.Category(nil), rows...), 0)
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	category := models.Category{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(input.Name),
		Slug:   input.Slug,
		Icon:   input.Icon,
		Order:  input.Order,
		Active: true,
	}
	if category.Order == 0 {
		category.Order = DefaultOrder
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := normalize(&category); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &category)
	if err != nil {
		return nil, s.writeError(err, "db: create category")
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "category", created.Slug), "category created")
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		row.Slug = *input.Slug
	}
	if input.Icon != nil {
		row.Icon = *input.Icon
	}
	if input.Order != nil {
		row.Order = *input.Order
	}
	if input.Active != nil {
		row.Active = *input.Active
	}
	if err := normalize(row); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, row)
	if err != nil {
		return nil, s.writeError(err, "db: update category")
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "category", saved.Slug), "category updated")
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	s.invalidate(ctx)
	return nil
}

// normalize derives the slug from the name when absent and lowercases it.
func normalize(c *models.Category) error {
	if c.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required").
			WithDetails(map[string]any{"field": "name"})
	}
	slug := Slugify(c.Slug)
	if slug == "" {
		slug = Slugify(c.Name)
	}
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be derived from name").
			WithDetails(map[string]any{"field": "slug"})
	}
	c.Slug = slug
	return nil
}

func (s *service) writeError(err error, msg string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category name or slug already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

// invalidate drops categories and products, since listings embed category data.
func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	n := s.cache.InvalidateDomain(enums.CacheDomainCategories)
	n += s.cache.InvalidateDomain(enums.CacheDomainProducts)
	s.logg.Debug(s.logg.WithField(ctx, "evicted", n), "category caches invalidated")
}
