package checkout

import "github.com/raushankrgupta/shoplungu/utils"

const (
	// FreeShippingThreshold is the subtotal above which shipping is free
	FreeShippingThreshold = 100.0
	FlatShipping          = 10.0
	TaxRate               = 0.08
)

// Totals is the price breakdown of an order
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives shipping, tax and total from a cart subtotal
func ComputeTotals(subtotal float64) Totals {
	shipping := FlatShipping
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: utils.RoundCents(subtotal),
		Shipping: shipping,
		Tax:      utils.RoundCents(tax),
		Total:    utils.RoundCents(subtotal + shipping + tax),
	}
}
