package catalog

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
)

// ListFilters narrow the storefront listing.
type ListFilters struct {
	Category  string `schema:"category"`
	Query     string `schema:"q"`
	Available *bool  `schema:"available"`
	Orderable *bool  `schema:"orderable"`
}

var filterDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeFilters reads list filters from query parameters.
func DecodeFilters(values url.Values) (ListFilters, error) {
	var f ListFilters
	if err := filterDecoder.Decode(&f, values); err != nil {
		return ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product filters")
	}
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.Query = strings.TrimSpace(f.Query)
	if f.Category == "all" {
		f.Category = ""
	}
	if f.Category != "" && !enums.ProductCategory(f.Category).IsValid() {
		return ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
			WithDetails(map[string]any{"category": f.Category})
	}
	return f, nil
}

// Match reports whether p passes every set filter.
func (f ListFilters) Match(p models.Product) bool {
	if f.Category != "" && string(p.Category) != f.Category {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	if f.Orderable != nil && p.Orderable() != *f.Orderable {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Origin), q) {
			return false
		}
	}
	return true
}

func applyFilters(products []models.Product, f ListFilters) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}
