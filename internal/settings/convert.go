package settings

import (
	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

// FromModel maps a persisted row onto the theme record.
func FromModel(row models.Settings) ThemeSettings {
	return ThemeSettings{
		BackgroundType:  row.BackgroundType,
		BackgroundColor: row.BackgroundColor,
		BackgroundImage: row.BackgroundImage,
		GradientFrom:    row.GradientFrom,
		GradientTo:      row.GradientTo,
		ShopName:        row.ShopName,
		BannerText:      row.BannerText,
		BannerSubtext:   row.BannerSubtext,
		BannerImage:     row.BannerImage,
		BannerImageFit:  row.BannerImageFit,
		OrderLink:       row.OrderLink,
		SellerLinks:     cloneLinks(row.SellerLinks),
		SocialLinks:     types.CloneSocialLinks(row.SocialLinks),
	}
}

// ToModel maps the theme record onto the singleton row.
func ToModel(t ThemeSettings) *models.Settings {
	c := t.Clone()
	if c.SellerLinks == nil {
		c.SellerLinks = map[string]string{}
	}
	if c.SocialLinks == nil {
		c.SocialLinks = []types.SocialLink{}
	}
	return &models.Settings{
		ID:              models.SettingsSingletonID,
		BackgroundType:  c.BackgroundType,
		BackgroundColor: c.BackgroundColor,
		BackgroundImage: c.BackgroundImage,
		GradientFrom:    c.GradientFrom,
		GradientTo:      c.GradientTo,
		ShopName:        c.ShopName,
		BannerText:      c.BannerText,
		BannerSubtext:   c.BannerSubtext,
		BannerImage:     c.BannerImage,
		BannerImageFit:  c.BannerImageFit,
		OrderLink:       c.OrderLink,
		SellerLinks:     c.SellerLinks,
		SocialLinks:     c.SocialLinks,
	}
}
