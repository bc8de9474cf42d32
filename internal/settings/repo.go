package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
)

var mutableColumns = []string{
	"background_type", "background_color", "background_image",
	"gradient_from", "gradient_to", "shop_name",
	"banner_text", "banner_subtext", "banner_image", "banner_image_fit",
	"order_link", "seller_links", "social_links", "updated_at",
}

// Repository persists the singleton settings row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Find returns the settings row or nil when none exists yet.
func (r *Repository) Find(ctx context.Context) (*models.Settings, error) {
	var row models.Settings
	err := r.db.WithContext(ctx).
		Where("id = ?", models.SettingsSingletonID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert writes the whole row, inserting it on first use.
func (r *Repository) Upsert(ctx context.Context, row *models.Settings) (*models.Settings, error) {
	row.ID = models.SettingsSingletonID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(mutableColumns),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}
