package models

// Product represents a catalog product
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Brand         string   `json:"brand" yaml:"brand"`
	Category      string   `json:"category" yaml:"category"` // category slug, e.g. "men-shirts"
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty" yaml:"original_price,omitempty"` // list price before discount
	Sizes         []string `json:"sizes" yaml:"sizes"`
	Colors        []string `json:"colors" yaml:"colors"`
	Image         string   `json:"image" yaml:"image"`
	Images        []string `json:"images,omitempty" yaml:"images,omitempty"`
	Rating        float64  `json:"rating" yaml:"rating"` // 0-5
	Reviews       int      `json:"reviews" yaml:"reviews"`
	InStock       bool     `json:"in_stock" yaml:"in_stock"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasSize reports whether the product is offered in any of the given sizes
func (p Product) HasSize(sizes map[string]struct{}) bool {
	for _, s := range p.Sizes {
		if _, ok := sizes[s]; ok {
			return true
		}
	}
	return false
}

// HasColor reports whether the product is offered in any of the given colors
func (p Product) HasColor(colors map[string]struct{}) bool {
	for _, c := range p.Colors {
		if _, ok := colors[c]; ok {
			return true
		}
	}
	return false
}

// Category represents a catalog category. Parent is empty for top-level categories.
type Category struct {
	Slug   string `json:"slug" yaml:"slug"`
	Name   string `json:"name" yaml:"name"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}
