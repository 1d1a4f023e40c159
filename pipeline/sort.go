package pipeline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/raushankrgupta/shoplungu/models"
)

// SortKey names a product ordering
type SortKey string

const (
	SortNewest    SortKey = "newest" // catalog order
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// SortKeys lists the supported keys in display order
var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortName}

// ParseSortKey accepts the supported keys; an empty string means newest
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	key := SortKey(s)
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Sort returns a stably sorted copy of products
func Sort(products []models.Product, key SortKey) []models.Product {
	out := slices.Clone(products)

	var compare func(a, b models.Product) int
	switch key {
	case SortPriceLow:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		compare = func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRating:
		compare = func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortName:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Name, b.Name) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}
