package models

import "time"

// OrderAddress represents a shipping or billing address on an order
type OrderAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order represents the confirmation snapshot handed from checkout to the
// confirmation view. It is never stored beyond that hand-off.
type Order struct {
	OrderNumber       string       `json:"order_number"`
	OrderDate         time.Time    `json:"order_date"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
	Email             string       `json:"email,omitempty"`
	Items             []CartItem   `json:"items"`
	ShippingAddress   OrderAddress `json:"shipping_address"`
	BillingAddress    OrderAddress `json:"billing_address"`
	PaymentMethod     string       `json:"payment_method"`
	Subtotal          float64      `json:"subtotal"`
	Shipping          float64      `json:"shipping"`
	Tax               float64      `json:"tax"`
	Total             float64      `json:"total"`
	Placeholder       bool         `json:"placeholder,omitempty"` // fabricated for display only
}
