package models

import (
	"time"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

// SettingsSingletonID is the primary key of the only settings row.
const SettingsSingletonID = 1

// Settings stores the storefront theme and contact links.
type Settings struct {
	ID              int                  `gorm:"column:id;primaryKey;autoIncrement:false" json:"-"`
	BackgroundType  enums.BackgroundType `gorm:"column:background_type;not null" json:"backgroundType"`
	BackgroundColor string               `gorm:"column:background_color;not null;default:''" json:"backgroundColor"`
	BackgroundImage string               `gorm:"column:background_image;not null;default:''" json:"backgroundImage"`
	GradientFrom    string               `gorm:"column:gradient_from;not null;default:''" json:"gradientFrom"`
	GradientTo      string               `gorm:"column:gradient_to;not null;default:''" json:"gradientTo"`
	ShopName        string               `gorm:"column:shop_name;not null;default:''" json:"shopName"`
	BannerText      string               `gorm:"column:banner_text;not null;default:''" json:"bannerText"`
	BannerSubtext   string               `gorm:"column:banner_subtext;not null;default:''" json:"bannerSubtext"`
	BannerImage     string               `gorm:"column:banner_image;not null;default:''" json:"bannerImage"`
	BannerImageFit  enums.ImageFit       `gorm:"column:banner_image_fit;not null" json:"bannerImageFit"`
	OrderLink       string               `gorm:"column:order_link;not null;default:''" json:"orderLink"`
	SellerLinks     map[string]string    `gorm:"column:seller_links;serializer:json" json:"sellerLinks"`
	SocialLinks     []types.SocialLink   `gorm:"column:social_links;serializer:json" json:"socialLinks"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Settings) TableName() string { return "settings" }
