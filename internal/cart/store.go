// Package cart holds the shopping cart line list and its derived totals.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// DefaultOptionLabel is the key suffix used when no pricing option was chosen.
const DefaultOptionLabel = "default"

// VariantSeparator splits a display name into its base name and variant.
const VariantSeparator = " - "

// LineKey identifies one product/option pair in the cart.
type LineKey string

// KeyFor builds the line key for productID ordered under optionLabel.
func KeyFor(productID, optionLabel string) LineKey {
	label := strings.TrimSpace(optionLabel)
	if label == "" {
		label = DefaultOptionLabel
	}
	return LineKey(productID + ":" + label)
}

// Product is the snapshot copied into a line at add time. It is never
// refreshed from the catalog afterwards.
type Product struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Origin         string                 `json:"origin,omitempty"`
	Price          decimal.Decimal        `json:"price"`
	PricingOptions []models.PricingOption `json:"pricing,omitempty"`
	Category       enums.ProductCategory  `json:"category"`
	Tag            string                 `json:"tag,omitempty"`
	TagColor       enums.TagColor         `json:"tagColor,omitempty"`
	Country        string                 `json:"country,omitempty"`
	CountryFlag    string                 `json:"countryFlag,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Image          string                 `json:"image,omitempty"`
	Video          string                 `json:"video,omitempty"`
}

// ProductFromModel snapshots a catalog product.
func ProductFromModel(p models.Product) Product {
	options := make([]models.PricingOption, len(p.PricingOptions))
	copy(options, p.PricingOptions)
	return Product{
		ID:             p.ID,
		Name:           p.Name,
		Origin:         p.Origin,
		Price:          p.Price,
		PricingOptions: options,
		Category:       p.Category,
		Tag:            p.Tag,
		TagColor:       p.TagColor,
		Country:        p.Country,
		CountryFlag:    p.CountryFlag,
		Description:    p.Description,
		Image:          p.Image,
		Video:          p.Video,
	}
}

// OptionPrice returns the price of the pricing option labelled label.
func (p Product) OptionPrice(label string) (decimal.Decimal, bool) {
	for _, option := range p.PricingOptions {
		if option.Weight == label {
			return option.Price, true
		}
	}
	return decimal.Decimal{}, false
}

// Line is a product snapshot with the chosen option and a quantity of at least one.
type Line struct {
	Product
	Key         LineKey         `json:"key"`
	OptionLabel string          `json:"optionLabel,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is UnitPrice * Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DisplayName is the product name suffixed with the option label, unless the
// name already ends with that label.
func (l Line) DisplayName() string {
	if l.OptionLabel == "" || strings.HasSuffix(l.Name, VariantSeparator+l.OptionLabel) {
		return l.Name
	}
	return l.Name + VariantSeparator + l.OptionLabel
}

// Store is the in-session line list. It is not safe for concurrent use; callers
// that share one across goroutines must serialize access.
type Store struct {
	lines []Line
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Restore hydrates a store from a snapshot. Lines with a non-positive quantity
// or a duplicate key are dropped.
func Restore(lines []Line) *Store {
	s := &Store{}
	seen := make(map[LineKey]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if line.Key == "" {
			line.Key = KeyFor(line.ID, line.OptionLabel)
		}
		if _, dup := seen[line.Key]; dup {
			continue
		}
		seen[line.Key] = struct{}{}
		s.lines = append(s.lines, line)
	}
	return s
}

// Add puts one unit of product under optionLabel. An existing line for the same
// key keeps its price snapshot and gains one unit. A new line takes the option
// price when the option exists, otherwise the product base price.
func (s *Store) Add(product Product, optionLabel string) Line {
	optionLabel = strings.TrimSpace(optionLabel)
	key := KeyFor(product.ID, optionLabel)
	if i := s.indexOf(key); i >= 0 {
		s.lines[i].Quantity++
		return s.lines[i]
	}

	price := product.Price
	if optionLabel != "" {
		if optionPrice, ok := product.OptionPrice(optionLabel); ok {
			price = optionPrice
		}
	}
	line := Line{
		Product:     product,
		Key:         key,
		OptionLabel: optionLabel,
		UnitPrice:   price,
		Quantity:    1,
	}
	s.lines = append(s.lines, line)
	return line
}

// Remove deletes the line at key. It reports whether a line was removed.
func (s *Store) Remove(key LineKey) bool {
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

// UpdateQuantity overwrites the quantity at key. qty <= 0 removes the line.
// It reports whether a line was found.
func (s *Store) UpdateQuantity(key LineKey, qty int) bool {
	if qty <= 0 {
		return s.Remove(key)
	}
	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = qty
	return true
}

// Clear empties the store.
func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// IsEmpty reports whether the store holds no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// TotalItems is the sum of line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the unrounded sum of line subtotals.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (s *Store) indexOf(key LineKey) int {
	for i := range s.lines {
		if s.lines[i].Key == key {
			return i
		}
	}
	return -1
}
