package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/shoplungu/catalog"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/pipeline"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
)

const (
	featuredCount  = 8
	homeRowCount   = 4
	relatedCount   = 4
	maxSearchLimit = 100
)

// ProductView is a product as the storefront displays it
type ProductView struct {
	models.Product
	Discount         int    `json:"discount,omitempty"`
	DisplayPrice     string `json:"display_price"`
	DisplayOriginal  string `json:"display_original_price,omitempty"`
	PlainDescription string `json:"plain_description,omitempty"`
}

func (h *Handler) productView(r *http.Request, p models.Product, withDescription bool) ProductView {
	view := ProductView{Product: p, DisplayPrice: utils.FormatPrice(p.Price)}
	if p.OriginalPrice != nil {
		view.Discount = utils.CalculateDiscount(*p.OriginalPrice, p.Price)
		view.DisplayOriginal = utils.FormatPrice(*p.OriginalPrice)
	}
	if withDescription {
		view.PlainDescription = catalog.PlainDescription(p)
	}

	images := utils.PresignImageURLs(r.Context(), append([]string{p.Image}, p.Images...))
	view.Image = images[0]
	if len(p.Images) > 0 {
		view.Images = images[1:]
	}
	return view
}

func (h *Handler) productViews(r *http.Request, products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, h.productView(r, p, false))
	}
	return views
}

// listingPage is a pipeline page with display-ready items
type listingPage struct {
	Items      []ProductView       `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"total_pages"`
	Sort       pipeline.SortKey    `json:"sort"`
	Filter     pipeline.FilterSpec `json:"filter"`
}

func (h *Handler) listing(r *http.Request, products []models.Product, q pipeline.Query) listingPage {
	page := pipeline.Run(products, q)
	return listingPage{
		Items:      h.productViews(r, page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Sort:       q.Sort,
		Filter:     q.Filter,
	}
}

// ProductsHandler is the search surface: q, category and limit
func (h *Handler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Products API]")

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondError(w, &logMessageBuilder, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxSearchLimit)
	}

	results := h.Catalog.Search(q.Get("q"), q.Get("category"), limit)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("q=%q category=%q matched %d", q.Get("q"), q.Get("category"), len(results)))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"products":   h.productViews(r, results),
			"total":      len(results),
			"categories": h.Catalog.Categories(),
		},
	})
}

// ProductHandler returns one product with its related products
func (h *Handler) ProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Product API]")

	id := r.PathValue("id")
	product, ok := h.Catalog.Product(id)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Product %s not found", id), http.StatusNotFound)
		return
	}

	inWishlist := false
	if sess, err := GetSessionFromContext(r.Context()); err == nil {
		sess.Wishlist.View(func(wl *store.Wishlist) { inWishlist = wl.IsInWishlist(id) })
	}

	category, _ := h.Catalog.Category(product.Category)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"product":     h.productView(r, product, true),
		"category":    category,
		"related":     h.productViews(r, h.Catalog.Related(id, relatedCount)),
		"in_wishlist": inWishlist,
	})
}

// CatalogHandler lists the whole catalog through the filter, sort and page pipeline
func (h *Handler) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Catalog API]")

	query, err := parseListingQuery(r.URL.Query(), h.PageSize)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	products := h.Catalog.Products()
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"listing": h.listing(r, products, query),
		"facets":  pipeline.BuildFacets(products),
	})
}

func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.Catalog.Categories(),
	})
}

// CategoryHandler serves a category landing page: the collection run through
// the pipeline, plus facets for its filter sidebar
func (h *Handler) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Category API]")

	slug := r.PathValue("slug")
	info, products, ok := h.Catalog.Collection(slug)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Category %s not found", slug), http.StatusNotFound)
		return
	}

	query, err := parseListingQuery(r.URL.Query(), h.PageSize)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("slug=%s products=%d page=%d", slug, len(products), query.Page))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"collection": info,
		"listing":    h.listing(r, products, query),
		"facets":     pipeline.BuildFacets(products),
		"sort_keys":  pipeline.SortKeys,
	})
}

// HomeHandler returns the featured products and the men and women rows
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	_, men, _ := h.Catalog.Collection("men")
	_, women, _ := h.Catalog.Collection("women")

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"featured":   h.productViews(r, h.Catalog.Featured(featuredCount)),
		"men":        h.productViews(r, men[:min(homeRowCount, len(men))]),
		"women":      h.productViews(r, women[:min(homeRowCount, len(women))]),
		"categories": h.Catalog.Categories(),
	})
}

func (h *Handler) SuggestHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": h.productViews(r, h.Catalog.Suggest(r.URL.Query().Get("q"))),
	})
}
