// Package pipeline turns a product list into one page of results: filter, then
// sort, then paginate. Everything here is pure.
package pipeline

import (
	"errors"
	"math"

	"github.com/raushankrgupta/shoplungu/models"
)

// ErrInvalidPriceRange is reported by FilterSpec.Validate when Min > Max
var ErrInvalidPriceRange = errors.New("price range minimum exceeds maximum")

// PriceRange bounds price inclusively at both ends
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec selects products. Dimensions combine with AND; values within a
// dimension combine with OR. An empty dimension (or nil PriceRange) imposes no
// constraint.
type FilterSpec struct {
	Categories  []string    `json:"categories,omitempty"`
	Brands      []string    `json:"brands,omitempty"`
	Sizes       []string    `json:"sizes,omitempty"`
	Colors      []string    `json:"colors,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	InStockOnly bool        `json:"in_stock_only,omitempty"`
}

// Validate reports caller errors. Filter does not correct them.
func (f FilterSpec) Validate() error {
	if f.PriceRange == nil {
		return nil
	}
	for _, bound := range []float64{f.PriceRange.Min, f.PriceRange.Max} {
		if math.IsNaN(bound) || math.IsInf(bound, 0) {
			return errors.New("price range bounds must be finite numbers")
		}
	}
	if f.PriceRange.Min < 0 || f.PriceRange.Max < 0 {
		return errors.New("price range bounds must not be negative")
	}
	if f.PriceRange.Min > f.PriceRange.Max {
		return ErrInvalidPriceRange
	}
	return nil
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Filter returns the products matching every constrained dimension, in input order
func Filter(products []models.Product, spec FilterSpec) []models.Product {
	categories := toSet(spec.Categories)
	brands := toSet(spec.Brands)
	sizes := toSet(spec.Sizes)
	colors := toSet(spec.Colors)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if categories != nil {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if brands != nil {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if spec.PriceRange != nil && (p.Price < spec.PriceRange.Min || p.Price > spec.PriceRange.Max) {
			continue
		}
		if sizes != nil && !p.HasSize(sizes) {
			continue
		}
		if colors != nil && !p.HasColor(colors) {
			continue
		}
		if spec.InStockOnly && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}
