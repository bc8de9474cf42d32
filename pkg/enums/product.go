package enums

import "fmt"

// ProductCategory is the closed set of catalog categories.
type ProductCategory string

const (
	ProductCategoryWeed ProductCategory = "weed"
	ProductCategoryHash ProductCategory = "hash"
)

var validProductCategories = []ProductCategory{
	ProductCategoryWeed,
	ProductCategoryHash,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// TagColor drives the promotional tag badge color.
type TagColor string

const (
	TagColorRed   TagColor = "red"
	TagColorGreen TagColor = "green"
)

var validTagColors = []TagColor{
	TagColorRed,
	TagColorGreen,
}

// String implements fmt.Stringer.
func (c TagColor) String() string {
	return string(c)
}

// IsValid reports whether the value is a known TagColor.
func (c TagColor) IsValid() bool {
	for _, candidate := range validTagColors {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseTagColor converts raw input into a TagColor.
func ParseTagColor(value string) (TagColor, error) {
	for _, candidate := range validTagColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tag color %q", value)
}
