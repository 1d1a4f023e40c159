package models

// CartKey identifies a cart line. Two lines for the same product in a different
// size or color are distinct.
type CartKey struct {
	ProductID string `json:"id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartItem represents one line in the shopping cart
type CartItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // unit price
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

// Key returns the line identity
func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// LineTotal returns unit price times quantity
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
