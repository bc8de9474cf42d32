package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// StaticQuantity is the stock reported for built-in products.
const StaticQuantity = 50

func staticProduct(id, name, origin string, price int64, image string, category enums.ProductCategory,
	tag string, color enums.TagColor, country, flag, description string) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Origin:      origin,
		Price:       decimal.NewFromInt(price),
		Image:       image,
		Category:    category,
		Tag:         tag,
		TagColor:    color,
		Country:     country,
		CountryFlag: flag,
		Description: description,
		Quantity:    StaticQuantity,
		Available:   true,
	}
}

var staticProducts = []models.Product{
	staticProduct("1", "Cali Spain", "Espagne", 45, "/products/cali-spain.jpg", enums.ProductCategoryWeed,
		"BON RAPPORT QUALITÉ", enums.TagColorGreen, "ES", "🇪🇸",
		"Fleur premium importée d'Espagne avec un profil terpénique exceptionnel."),
	staticProduct("2", "Lemon Cherry Gelato", "Canadienne", 65, "/products/lemon-cherry.jpg", enums.ProductCategoryWeed,
		"DE LA FRAPPE", enums.TagColorRed, "CA", "🇨🇦",
		"Variété canadienne premium avec des notes d'agrumes et de cerise."),
	staticProduct("3", "Liberty Haze", "Haze", 55, "/products/liberty-haze.jpg", enums.ProductCategoryWeed,
		"NOUVEAUTÉ", enums.TagColorGreen, "NL", "🇳🇱",
		"Haze classique des Pays-Bas avec un effet énergisant."),
	staticProduct("4", "Moroccan Hash", "Maroc", 35, "/products/moroccan-hash.jpg", enums.ProductCategoryHash,
		"TRADITIONNEL", enums.TagColorGreen, "MA", "🇲🇦",
		"Hash traditionnel marocain de qualité supérieure."),
	staticProduct("5", "Afghan Black", "Afghanistan", 40, "/products/afghan-black.jpg", enums.ProductCategoryHash,
		"PREMIUM", enums.TagColorRed, "AF", "🇦🇫",
		"Hash noir afghan avec une texture crémeuse et un goût unique."),
	staticProduct("6", "Purple Punch", "Canadienne", 70, "/products/purple-punch.jpg", enums.ProductCategoryWeed,
		"EXOTIC", enums.TagColorRed, "CA", "🇨🇦",
		"Variété exotique avec des notes fruitées et florales."),
	staticProduct("7", "OG Kush", "USA", 60, "/products/og-kush.jpg", enums.ProductCategoryWeed,
		"CLASSIQUE", enums.TagColorGreen, "US", "🇺🇸",
		"La légendaire OG Kush avec son profil terpénique unique."),
	staticProduct("8", "Charas", "Inde", 50, "/products/charas.jpg", enums.ProductCategoryHash,
		"ARTISANAL", enums.TagColorGreen, "IN", "🇮🇳",
		"Hash artisanal indien fait à la main selon la méthode traditionnelle."),
	withPricing(
		staticProduct("9", "Fond De Haze", "Pays-Bas", 250, "/products/fond-de-haze.jpg", enums.ProductCategoryWeed,
			"WEED", enums.TagColorGreen, "NL", "🇳🇱",
			"Haze premium des Pays-Bas avec un profil aromatique exceptionnel et des effets puissants."),
		models.PricingOption{Weight: "100g", Price: decimal.NewFromInt(250)},
		models.PricingOption{Weight: "200g", Price: decimal.NewFromInt(450)},
	),
}

func withPricing(p models.Product, options ...models.PricingOption) models.Product {
	p.PricingOptions = options
	return p
}

// StaticProducts returns a copy of the built-in catalog.
func StaticProducts() []models.Product {
	out := make([]models.Product, len(staticProducts))
	for i, p := range staticProducts {
		out[i] = cloneProduct(p)
	}
	return out
}

// StaticProduct looks up a built-in product by id.
func StaticProduct(id string) (models.Product, bool) {
	for _, p := range staticProducts {
		if p.ID == id {
			return cloneProduct(p), true
		}
	}
	return models.Product{}, false
}

func cloneProduct(p models.Product) models.Product {
	if p.PricingOptions != nil {
		p.PricingOptions = append([]models.PricingOption(nil), p.PricingOptions...)
	}
	return p
}
