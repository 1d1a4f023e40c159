package pipeline

import "github.com/raushankrgupta/shoplungu/models"

// Facets is the data a filter sidebar offers for a product list
type Facets struct {
	Categories   []string    `json:"categories"`
	Brands       []string    `json:"brands"`
	Sizes        []string    `json:"sizes"`
	Colors       []string    `json:"colors"`
	PriceRange   *PriceRange `json:"price_range,omitempty"`
	Availability struct {
		InStock    int `json:"in_stock"`
		OutOfStock int `json:"out_of_stock"`
	} `json:"availability"`
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
		s.values = []string{}
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

func (s *orderedSet) list() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}

// BuildFacets collects distinct values in first-seen order, the price span and
// stock counts
func BuildFacets(products []models.Product) Facets {
	var categories, brands, sizes, colors orderedSet
	var f Facets

	for i, p := range products {
		categories.add(p.Category)
		brands.add(p.Brand)
		for _, s := range p.Sizes {
			sizes.add(s)
		}
		for _, c := range p.Colors {
			colors.add(c)
		}

		if i == 0 {
			f.PriceRange = &PriceRange{Min: p.Price, Max: p.Price}
		} else {
			f.PriceRange.Min = min(f.PriceRange.Min, p.Price)
			f.PriceRange.Max = max(f.PriceRange.Max, p.Price)
		}

		if p.InStock {
			f.Availability.InStock++
		} else {
			f.Availability.OutOfStock++
		}
	}

	f.Categories = categories.list()
	f.Brands = brands.list()
	f.Sizes = sizes.list()
	f.Colors = colors.list()
	return f
}
