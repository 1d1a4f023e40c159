package pipeline

import "github.com/raushankrgupta/shoplungu/models"

// DefaultPageSize is the listing page size of the storefront
const DefaultPageSize = 12

// Page is one slice of a result list
type Page struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// Paginate returns the 1-based page of products. The page number is clamped into
// [1, TotalPages]; an empty list gives an empty page 1 and zero total pages.
// A size below 1 falls back to DefaultPageSize.
func Paginate(products []models.Product, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(products)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	result := Page{
		Items:      []models.Product{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
	if total == 0 {
		return result
	}

	start := (page - 1) * size
	end := min(start+size, total)
	result.Items = append(result.Items, products[start:end]...)
	return result
}
