package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// PricingOption is a weight tier with its own price.
type PricingOption struct {
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// Product is a catalog listing.
type Product struct {
	ID             string                `gorm:"column:id;primaryKey" json:"id"`
	Name           string                `gorm:"column:name;not null" json:"name"`
	Origin         string                `gorm:"column:origin;not null;default:''" json:"origin"`
	Price          decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null;default:0" json:"price"`
	PricingOptions []PricingOption       `gorm:"column:pricing_options;serializer:json" json:"pricing,omitempty"`
	Category       enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	Tag            string                `gorm:"column:tag;not null;default:''" json:"tag,omitempty"`
	TagColor       enums.TagColor        `gorm:"column:tag_color;not null" json:"tagColor,omitempty"`
	Country        string                `gorm:"column:country;not null;default:'FR'" json:"country"`
	CountryFlag    string                `gorm:"column:country_flag;not null;default:''" json:"countryFlag"`
	Description    string                `gorm:"column:description;not null;default:''" json:"description,omitempty"`
	Image          string                `gorm:"column:image;not null;default:''" json:"image"`
	Video          string                `gorm:"column:video;not null;default:''" json:"video,omitempty"`
	Quantity       int                   `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Available      bool                  `gorm:"column:available;not null" json:"available"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// Orderable reports whether the product can be put in a cart. A zero price with
// no pricing tiers marks an informational listing.
func (p Product) Orderable() bool {
	return !p.Price.IsZero() || len(p.PricingOptions) > 0
}
