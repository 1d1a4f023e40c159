package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
)

// CartRequest represents the payload for adding or updating a cart line
type CartRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (c CartRequest) key() models.CartKey {
	return models.CartKey{ProductID: c.ProductID, Size: c.Size, Color: c.Color}
}

type cartResponse struct {
	Items        []models.CartItem `json:"items"`
	TotalItems   int               `json:"total_items"`
	Totals       checkout.Totals   `json:"totals"`
	DisplayTotal string            `json:"display_total"`
}

func cartState(sess *session.Session) cartResponse {
	var resp cartResponse
	sess.Cart.View(func(c *store.Cart) {
		resp.Items = c.Items()
		resp.TotalItems = c.TotalItems()
		resp.Totals = checkout.ComputeTotals(c.TotalPrice())
	})
	resp.DisplayTotal = utils.FormatPrice(resp.Totals.Total)
	return resp
}

// CartHandler reads and changes the session cart.
// GET returns it, POST adds a line, PUT sets a quantity, DELETE removes one
// line (product_id, size, color query parameters) or clears the cart.
func (h *Handler) CartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Cart API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var mutate func(*store.Cart)
	switch r.Method {
	case http.MethodGet:
		utils.RespondJSON(w, http.StatusOK, cartState(sess))
		return

	case http.MethodPost:
		var req CartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		product, ok := h.Catalog.Product(req.ProductID)
		if !ok {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Product %s not found", req.ProductID), http.StatusNotFound)
			return
		}
		if msg := checkVariant(product, req.Size, req.Color); msg != "" {
			utils.RespondError(w, &logMessageBuilder, msg, http.StatusBadRequest)
			return
		}
		item := models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Size:      req.Size,
			Color:     req.Color,
			Quantity:  req.Quantity,
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Adding %d x %s (%s/%s)", max(item.Quantity, 1), item.ProductID, item.Size, item.Color))
		mutate = func(c *store.Cart) { c.AddItem(item) }

	case http.MethodPut:
		var req CartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Setting %s (%s/%s) to %d", req.ProductID, req.Size, req.Color, req.Quantity))
		mutate = func(c *store.Cart) { c.UpdateQuantity(req.key(), req.Quantity) }

	case http.MethodDelete:
		q := r.URL.Query()
		if id := q.Get("product_id"); id != "" {
			key := models.CartKey{ProductID: id, Size: q.Get("size"), Color: q.Get("color")}
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Removing %s (%s/%s)", key.ProductID, key.Size, key.Color))
			mutate = func(c *store.Cart) { c.RemoveItem(key) }
		} else {
			utils.AddToLogMessage(&logMessageBuilder, "Clearing cart")
			mutate = func(c *store.Cart) { c.Clear() }
		}

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := sess.Cart.Update(r.Context(), mutate); err != nil {
		// the change stands in memory and is written again on the next update
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist cart: %v", err))
	}
	utils.RespondJSON(w, http.StatusOK, cartState(sess))
}

// checkVariant returns a message when size or color is missing or not offered
func checkVariant(p models.Product, size, color string) string {
	if (len(p.Sizes) > 0 && size == "") || (len(p.Colors) > 0 && color == "") {
		return "Please select a size and color"
	}
	if len(p.Sizes) > 0 && !slices.Contains(p.Sizes, size) {
		return fmt.Sprintf("Size %s is not available", size)
	}
	if len(p.Colors) > 0 && !slices.Contains(p.Colors, color) {
		return fmt.Sprintf("Color %s is not available", color)
	}
	return ""
}

// WishlistRequest represents the payload for saving a product
type WishlistRequest struct {
	ProductID string `json:"product_id"`
}

func wishlistState(sess *session.Session) map[string]interface{} {
	var items []models.WishlistItem
	sess.Wishlist.View(func(wl *store.Wishlist) { items = wl.Items() })
	return map[string]interface{}{"items": items, "count": len(items)}
}

// WishlistHandler reads and changes the session wishlist.
// GET returns it, POST saves a product, DELETE removes one (product_id query
// parameter) or clears the list.
func (h *Handler) WishlistHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Wishlist API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var mutate func(*store.Wishlist)
	status := http.StatusOK
	switch r.Method {
	case http.MethodGet:
		utils.RespondJSON(w, http.StatusOK, wishlistState(sess))
		return

	case http.MethodPost:
		var req WishlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
			return
		}
		product, ok := h.Catalog.Product(req.ProductID)
		if !ok {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Product %s not found", req.ProductID), http.StatusNotFound)
			return
		}
		item := models.WishlistItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Brand:     product.Brand,
		}
		mutate = func(wl *store.Wishlist) {
			if wl.AddItem(item) {
				status = http.StatusCreated
			}
		}

	case http.MethodDelete:
		if id := r.URL.Query().Get("product_id"); id != "" {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Removing %s", id))
			mutate = func(wl *store.Wishlist) { wl.RemoveItem(id) }
		} else {
			utils.AddToLogMessage(&logMessageBuilder, "Clearing wishlist")
			mutate = func(wl *store.Wishlist) { wl.Clear() }
		}

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := sess.Wishlist.Update(r.Context(), mutate); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist wishlist: %v", err))
	}
	utils.RespondJSON(w, status, wishlistState(sess))
}
