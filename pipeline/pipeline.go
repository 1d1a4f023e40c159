package pipeline

import "github.com/raushankrgupta/shoplungu/models"

// Query is one listing request
type Query struct {
	Filter   FilterSpec
	Sort     SortKey
	Page     int
	PageSize int
}

// Run filters, sorts and paginates products. The input slice is not modified.
func Run(products []models.Product, q Query) Page {
	return Paginate(Sort(Filter(products, q.Filter), q.Sort), q.Page, q.PageSize)
}
