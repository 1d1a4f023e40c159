package models

// WishlistItem represents a product saved for later
type WishlistItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Brand     string  `json:"brand"`
}
