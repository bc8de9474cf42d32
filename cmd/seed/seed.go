package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hiddenspringfield/shop-backend/internal/catalog"
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

type counts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type report struct {
	Categories counts `json:"categories"`
	Products   counts `json:"products"`
}

func defaultCategories() []models.Category {
	return []models.Category{
		{Name: "Weed", Slug: "weed", Order: 1, Active: true},
		{Name: "Hash", Slug: "hash", Order: 2, Active: true},
	}
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// populate inserts the menu categories and the built-in catalog. Rows that
// already exist (categories by slug, products by name) are left untouched.
func populate(ctx context.Context, runner txRunner, logg *logger.Logger) (report, error) {
	var out report
	err := runner.WithTx(ctx, func(tx *gorm.DB) error {
		out = report{}
		for _, category := range defaultCategories() {
			exists, err := rowExists(ctx, tx, &models.Category{}, "slug = ?", category.Slug)
			if err != nil {
				return fmt.Errorf("lookup category %s: %w", category.Slug, err)
			}
			if exists {
				out.Categories.Skipped++
				continue
			}
			category.ID = uuid.NewString()
			if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
				return fmt.Errorf("create category %s: %w", category.Slug, err)
			}
			out.Categories.Created++
		}

		for _, product := range catalog.StaticProducts() {
			exists, err := rowExists(ctx, tx, &models.Product{}, "name = ?", product.Name)
			if err != nil {
				return fmt.Errorf("lookup product %s: %w", product.Name, err)
			}
			if exists {
				out.Products.Skipped++
				continue
			}
			if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
				return fmt.Errorf("create product %s: %w", product.Name, err)
			}
			logg.Debug(logg.WithField(ctx, "product_id", product.ID), "seeded product")
			out.Products.Created++
		}
		return nil
	})
	return out, err
}

func rowExists(ctx context.Context, tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	err := tx.WithContext(ctx).Model(model).Select("id").Where(query, args...).Take(&struct{ ID string }{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
