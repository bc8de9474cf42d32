// Package settings owns the storefront theme record: its defaults, partial
// merges, the cached/remote load sequence and the persistence gateway.
package settings

import (
	"fmt"
	"sort"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

// Default seller link names.
const (
	SellerBurns = "burns"
	SellerApu   = "apu"
	SellerMoe   = "moe"
)

// ThemeSettings is the flat shop-wide presentation record. Fields of inactive
// background modes are kept so switching back restores them.
type ThemeSettings struct {
	BackgroundType  enums.BackgroundType `json:"backgroundType"`
	BackgroundColor string               `json:"backgroundColor"`
	BackgroundImage string               `json:"backgroundImage"`
	GradientFrom    string               `json:"gradientFrom"`
	GradientTo      string               `json:"gradientTo"`
	ShopName        string               `json:"shopName"`
	BannerText      string               `json:"bannerText"`
	BannerSubtext   string               `json:"bannerSubtext"`
	BannerImage     string               `json:"bannerImage"`
	BannerImageFit  enums.ImageFit       `json:"bannerImageFit"`
	OrderLink       string               `json:"orderLink"`
	SellerLinks     map[string]string    `json:"sellerLinks"`
	SocialLinks     []types.SocialLink   `json:"socialLinks"`
}

// Defaults returns the built-in record a session starts from.
func Defaults() ThemeSettings {
	return ThemeSettings{
		BackgroundType:  enums.BackgroundTypeColor,
		BackgroundColor: "black",
		BackgroundImage: "",
		GradientFrom:    "#000000",
		GradientTo:      "#111111",
		ShopName:        "HIDDEN SPINGFIELD",
		BannerText:      "NOUVEAU DROP",
		BannerSubtext:   "Découvrez nos produits premium de qualité exceptionnelle",
		BannerImage:     "",
		BannerImageFit:  enums.ImageFitContain,
		OrderLink:       "",
		SellerLinks: map[string]string{
			SellerBurns: "",
			SellerApu:   "",
			SellerMoe:   "",
		},
		SocialLinks: []types.SocialLink{
			{ID: "1", Name: "Instagram", Icon: "instagram", Emoji: "📷", URL: "https://instagram.com/", Enabled: true},
			{ID: "2", Name: "Telegram", Icon: "telegram", Emoji: "✈️", URL: "https://t.me/", Enabled: true},
		},
	}
}

// Clone returns a deep copy.
func (t ThemeSettings) Clone() ThemeSettings {
	out := t
	out.SellerLinks = cloneLinks(t.SellerLinks)
	out.SocialLinks = types.CloneSocialLinks(t.SocialLinks)
	return out
}

// Apply returns t with every present field of p copied over it. Absent fields
// never erase. Seller links merge per name.
func (t ThemeSettings) Apply(p Patch) ThemeSettings {
	out := t.Clone()
	setIf(&out.BackgroundType, p.BackgroundType)
	setIf(&out.BackgroundColor, p.BackgroundColor)
	setIf(&out.BackgroundImage, p.BackgroundImage)
	setIf(&out.GradientFrom, p.GradientFrom)
	setIf(&out.GradientTo, p.GradientTo)
	setIf(&out.ShopName, p.ShopName)
	setIf(&out.BannerText, p.BannerText)
	setIf(&out.BannerSubtext, p.BannerSubtext)
	setIf(&out.BannerImage, p.BannerImage)
	setIf(&out.BannerImageFit, p.BannerImageFit)
	setIf(&out.OrderLink, p.OrderLink)
	if len(p.SellerLinks) > 0 {
		if out.SellerLinks == nil {
			out.SellerLinks = make(map[string]string, len(p.SellerLinks))
		}
		for name, link := range p.SellerLinks {
			out.SellerLinks[name] = link
		}
	}
	if p.SocialLinks != nil {
		out.SocialLinks = types.CloneSocialLinks(*p.SocialLinks)
	}
	return out
}

// AsPatch returns a patch with every field present.
func (t ThemeSettings) AsPatch() Patch {
	c := t.Clone()
	social := c.SocialLinks
	return Patch{
		BackgroundType:  &c.BackgroundType,
		BackgroundColor: &c.BackgroundColor,
		BackgroundImage: &c.BackgroundImage,
		GradientFrom:    &c.GradientFrom,
		GradientTo:      &c.GradientTo,
		ShopName:        &c.ShopName,
		BannerText:      &c.BannerText,
		BannerSubtext:   &c.BannerSubtext,
		BannerImage:     &c.BannerImage,
		BannerImageFit:  &c.BannerImageFit,
		OrderLink:       &c.OrderLink,
		SellerLinks:     c.SellerLinks,
		SocialLinks:     &social,
	}
}

// SellerNames returns the configured seller link names in sorted order.
func (t ThemeSettings) SellerNames() []string {
	names := make([]string, 0, len(t.SellerLinks))
	for name := range t.SellerLinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Patch is a partial settings record. A nil field is absent. It is also the
// wire shape of a record returned by a Gateway, which may omit fields.
type Patch struct {
	BackgroundType  *enums.BackgroundType `json:"backgroundType,omitempty"`
	BackgroundColor *string               `json:"backgroundColor,omitempty"`
	BackgroundImage *string               `json:"backgroundImage,omitempty"`
	GradientFrom    *string               `json:"gradientFrom,omitempty"`
	GradientTo      *string               `json:"gradientTo,omitempty"`
	ShopName        *string               `json:"shopName,omitempty"`
	BannerText      *string               `json:"bannerText,omitempty"`
	BannerSubtext   *string               `json:"bannerSubtext,omitempty"`
	BannerImage     *string               `json:"bannerImage,omitempty"`
	BannerImageFit  *enums.ImageFit       `json:"bannerImageFit,omitempty"`
	OrderLink       *string               `json:"orderLink,omitempty"`
	SellerLinks     map[string]string     `json:"sellerLinks,omitempty"`
	SocialLinks     *[]types.SocialLink   `json:"socialLinks,omitempty"`
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool {
	return p.BackgroundType == nil && p.BackgroundColor == nil && p.BackgroundImage == nil &&
		p.GradientFrom == nil && p.GradientTo == nil && p.ShopName == nil &&
		p.BannerText == nil && p.BannerSubtext == nil && p.BannerImage == nil &&
		p.BannerImageFit == nil && p.OrderLink == nil && len(p.SellerLinks) == 0 &&
		p.SocialLinks == nil
}

// Validate rejects unknown enum values and blank seller names.
func (p Patch) Validate() error {
	if p.BackgroundType != nil && !p.BackgroundType.IsValid() {
		return invalidField("backgroundType", string(*p.BackgroundType))
	}
	if p.BannerImageFit != nil && !p.BannerImageFit.IsValid() {
		return invalidField("bannerImageFit", string(*p.BannerImageFit))
	}
	for name := range p.SellerLinks {
		if name == "" {
			return invalidField("sellerLinks", name)
		}
	}
	return nil
}

func invalidField(field, value string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", field)).
		WithDetails(map[string]any{"field": field, "value": value})
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func cloneLinks(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
