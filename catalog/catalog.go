// Package catalog holds the read-only product and category data loaded at
// startup, and the lookups the storefront runs over it.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raushankrgupta/shoplungu/models"
)

// Catalog is immutable after New; every accessor returns copies
type Catalog struct {
	products   []models.Product
	categories []models.Category
	byID       map[string]int
	bySlug     map[string]int
	children   map[string][]string
}

// New validates and indexes the catalog data
func New(products []models.Product, categories []models.Category) (*Catalog, error) {
	c := &Catalog{
		products:   slices.Clone(products),
		categories: slices.Clone(categories),
		byID:       make(map[string]int, len(products)),
		bySlug:     make(map[string]int, len(categories)),
		children:   make(map[string][]string),
	}

	for i, cat := range c.categories {
		if cat.Slug == "" {
			return nil, fmt.Errorf("category %d has no slug", i)
		}
		if _, dup := c.bySlug[cat.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", cat.Slug)
		}
		c.bySlug[cat.Slug] = i
		if cat.Parent != "" {
			c.children[cat.Parent] = append(c.children[cat.Parent], cat.Slug)
		}
	}

	for i, p := range c.products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

func validateProduct(p models.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("product %q has no id", p.Name)
	case p.Price < 0:
		return fmt.Errorf("product %q has a negative price", p.ID)
	case p.OriginalPrice != nil && *p.OriginalPrice < p.Price:
		return fmt.Errorf("product %q original price is below its price", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %q rating %v is outside 0-5", p.ID, p.Rating)
	case p.Reviews < 0:
		return fmt.Errorf("product %q has a negative review count", p.ID)
	}
	return nil
}

// Products returns every product in catalog order
func (c *Catalog) Products() []models.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Categories() []models.Category {
	return slices.Clone(c.categories)
}

func (c *Catalog) Product(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Category(slug string) (models.Category, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Category{}, false
	}
	return c.categories[i], true
}

// Children returns the categories whose parent is slug
func (c *Catalog) Children(slug string) []models.Category {
	out := []models.Category{}
	for _, child := range c.children[slug] {
		cat, _ := c.Category(child)
		out = append(out, cat)
	}
	return out
}

// Collection describes a category landing page
type Collection struct {
	Slug          string            `json:"slug"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Subcategories []models.Category `json:"subcategories"`
}

var collectionTitles = map[string]Collection{
	"men":   {Name: "Men's Collection", Description: "Discover our complete range of men's fashion"},
	"women": {Name: "Women's Collection", Description: "Explore our latest women's styles and trends"},
	"kids":  {Name: "Kids' Collection", Description: "Fun and comfortable clothing for children"},
}

// Collection returns the products of a category landing page. A parent slug
// (men, women, kids, or any category with children) gathers the slug and every
// slug under it; any other slug matches its category exactly.
func (c *Catalog) Collection(slug string) (Collection, []models.Product, bool) {
	cat, known := c.Category(slug)
	children := c.children[slug]
	info, titled := collectionTitles[slug]

	if !known && !titled {
		return Collection{}, nil, false
	}

	info.Slug = slug
	if !titled {
		info.Name = cat.Name
		info.Description = fmt.Sprintf("Shop our %s collection", strings.ToLower(cat.Name))
	}

	var products []models.Product
	if len(children) > 0 || titled {
		info.Subcategories = c.Children(slug)
		for _, p := range c.products {
			if p.Category == slug || c.parentOf(p.Category) == slug || strings.HasPrefix(p.Category, slug+"-") {
				products = append(products, p)
			}
		}
	} else {
		info.Subcategories = []models.Category{cat}
		for _, p := range c.products {
			if p.Category == slug {
				products = append(products, p)
			}
		}
	}
	return info, products, true
}

func (c *Catalog) parentOf(slug string) string {
	if i, ok := c.bySlug[slug]; ok {
		return c.categories[i].Parent
	}
	return ""
}

// Featured returns the first n products
func (c *Catalog) Featured(n int) []models.Product {
	return slices.Clone(c.products[:min(max(n, 0), len(c.products))])
}

// Related returns up to n other products of the same category
func (c *Catalog) Related(id string, n int) []models.Product {
	p, ok := c.Product(id)
	if !ok {
		return []models.Product{}
	}
	out := []models.Product{}
	for _, other := range c.products {
		if len(out) >= n {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
		}
	}
	return out
}
