package cron

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hiddenspringfield/shop-backend/internal/catalog"
	"github.com/hiddenspringfield/shop-backend/internal/settings"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
)

type settingsLoader interface {
	Load(ctx context.Context) settings.ThemeSettings
}

// SettingsRefreshJob reloads the theme store so edits made through another
// instance reach this one without a sync call.
type SettingsRefreshJob struct {
	store settingsLoader
}

func NewSettingsRefreshJob(store settingsLoader) *SettingsRefreshJob {
	return &SettingsRefreshJob{store: store}
}

func (j *SettingsRefreshJob) Name() string { return "settings-refresh" }

func (j *SettingsRefreshJob) Run(ctx context.Context) error {
	j.store.Load(ctx)
	return nil
}

type productLister interface {
	List(ctx context.Context, filters catalog.ListFilters) ([]models.Product, error)
}

type categoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// CatalogWarmJob repopulates the product and category list entries once they
// expire so storefront reads keep hitting the cache.
type CatalogWarmJob struct {
	products   productLister
	categories categoryLister
}

func NewCatalogWarmJob(products productLister, categories categoryLister) *CatalogWarmJob {
	return &CatalogWarmJob{products: products, categories: categories}
}

func (j *CatalogWarmJob) Name() string { return "catalog-warm" }

func (j *CatalogWarmJob) Run(ctx context.Context) error {
	var errs error
	if j.products != nil {
		_, err := j.products.List(ctx, catalog.ListFilters{})
		errs = multierr.Append(errs, err)
	}
	if j.categories != nil {
		_, err := j.categories.List(ctx)
		errs = multierr.Append(errs, err)
	}
	return errs
}
