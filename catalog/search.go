package catalog

import (
	"strings"

	"github.com/raushankrgupta/shoplungu/models"
)

// SuggestionLimit caps Suggest results
const SuggestionLimit = 5

// Search returns the products whose name, brand or category contains query,
// case-insensitively. A non-empty category narrows the result to products whose
// category contains it. limit <= 0 means no limit.
func (c *Catalog) Search(query, category string, limit int) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(strings.TrimSpace(category))

	out := []models.Product{}
	for _, p := range c.products {
		if cat != "" && !strings.Contains(strings.ToLower(p.Category), cat) {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Suggest returns the first few matches for a search box. An empty query
// suggests nothing.
func (c *Catalog) Suggest(query string) []models.Product {
	if strings.TrimSpace(query) == "" {
		return []models.Product{}
	}
	return c.Search(query, "", SuggestionLimit)
}

func matches(p models.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Brand), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}
