package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
)

// CreateProductInput is the admin payload for a new product.
type CreateProductInput struct {
	ID             string                 `json:"id,omitempty" validate:"omitempty,max=64"`
	Name           string                 `json:"name" validate:"required,max=200"`
	Origin         string                 `json:"origin" validate:"max=120"`
	Price          decimal.Decimal        `json:"price"`
	PricingOptions []models.PricingOption `json:"pricing" validate:"omitempty,dive"`
	Category       enums.ProductCategory  `json:"category" validate:"required"`
	Tag            string                 `json:"tag" validate:"max=80"`
	TagColor       enums.TagColor         `json:"tagColor"`
	Country        string                 `json:"country" validate:"omitempty,max=8"`
	CountryFlag    string                 `json:"countryFlag" validate:"max=16"`
	Description    string                 `json:"description" validate:"max=4000"`
	Image          string                 `json:"image" validate:"max=2048"`
	Video          string                 `json:"video" validate:"max=2048"`
	Quantity       *int                   `json:"quantity" validate:"omitempty,min=0"`
	Available      *bool                  `json:"available"`
}

// UpdateProductInput is a partial product. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name           *string                 `json:"name" validate:"omitempty,max=200"`
	Origin         *string                 `json:"origin" validate:"omitempty,max=120"`
	Price          *decimal.Decimal        `json:"price"`
	PricingOptions *[]models.PricingOption `json:"pricing"`
	Category       *enums.ProductCategory  `json:"category"`
	Tag            *string                 `json:"tag" validate:"omitempty,max=80"`
	TagColor       *enums.TagColor         `json:"tagColor"`
	Country        *string                 `json:"country" validate:"omitempty,max=8"`
	CountryFlag    *string                 `json:"countryFlag" validate:"omitempty,max=16"`
	Description    *string                 `json:"description" validate:"omitempty,max=4000"`
	Image          *string                 `json:"image" validate:"omitempty,max=2048"`
	Video          *string                 `json:"video" validate:"omitempty,max=2048"`
	Quantity       *int                    `json:"quantity" validate:"omitempty,min=0"`
	Available      *bool                   `json:"available"`
}

func (in CreateProductInput) toModel() models.Product {
	p := models.Product{
		ID:             strings.TrimSpace(in.ID),
		Name:           strings.TrimSpace(in.Name),
		Origin:         strings.TrimSpace(in.Origin),
		Price:          in.Price,
		PricingOptions: in.PricingOptions,
		Category:       in.Category,
		Tag:            in.Tag,
		TagColor:       in.TagColor,
		Country:        strings.ToUpper(strings.TrimSpace(in.Country)),
		CountryFlag:    in.CountryFlag,
		Description:    in.Description,
		Image:          in.Image,
		Video:          in.Video,
		Available:      true,
	}
	if p.TagColor == "" {
		p.TagColor = enums.TagColorGreen
	}
	if p.Country == "" {
		p.Country = "FR"
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	return p
}

func (in UpdateProductInput) applyTo(p models.Product) models.Product {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Origin != nil {
		p.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.PricingOptions != nil {
		p.PricingOptions = append([]models.PricingOption(nil), (*in.PricingOptions)...)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Tag != nil {
		p.Tag = *in.Tag
	}
	if in.TagColor != nil {
		p.TagColor = *in.TagColor
	}
	if in.Country != nil {
		p.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	if in.CountryFlag != nil {
		p.CountryFlag = *in.CountryFlag
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Video != nil {
		p.Video = *in.Video
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	return p
}

// validateProduct enforces the domain rules the storage layer also checks.
func validateProduct(p models.Product) error {
	switch {
	case p.Name == "":
		return fieldError("name", "name is required")
	case !p.Category.IsValid():
		return fieldError("category", "category must be weed or hash")
	case p.TagColor != "" && !p.TagColor.IsValid():
		return fieldError("tagColor", "tagColor must be red or green")
	case p.Price.IsNegative():
		return fieldError("price", "price must not be negative")
	case p.Quantity < 0:
		return fieldError("quantity", "quantity must not be negative")
	}
	seen := make(map[string]struct{}, len(p.PricingOptions))
	for _, opt := range p.PricingOptions {
		weight := strings.TrimSpace(opt.Weight)
		if weight == "" {
			return fieldError("pricing", "pricing weight is required")
		}
		if opt.Price.IsNegative() {
			return fieldError("pricing", "pricing price must not be negative")
		}
		if _, dup := seen[weight]; dup {
			return fieldError("pricing", "duplicate pricing weight "+weight)
		}
		seen[weight] = struct{}{}
	}
	return nil
}

func fieldError(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{"field": field})
}
