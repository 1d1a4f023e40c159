// Package store holds the per-shopper state containers: cart, wishlist and the
// mock auth session. The stores know nothing about storage; Persisted adds that.
package store

import (
	"encoding/json"

	"github.com/raushankrgupta/shoplungu/models"
)

// Cart owns the shopping cart lines in insertion order
type Cart struct {
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(key models.CartKey) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// AddItem merges item into the line with the same key, or appends a new line.
// A quantity below 1 counts as 1.
func (c *Cart) AddItem(item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if i := c.indexOf(item.Key()); i >= 0 {
		c.items[i].Quantity += item.Quantity
		return
	}
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; a missing line is left alone.
func (c *Cart) UpdateQuantity(key models.CartKey, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(key)
		return
	}
	if i := c.indexOf(key); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

func (c *Cart) RemoveItem(key models.CartKey) {
	if i := c.indexOf(key); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines
func (c *Cart) Items() []models.CartItem {
	return append([]models.CartItem{}, c.items...)
}

// Item returns the line for key
func (c *Cart) Item(key models.CartKey) (models.CartItem, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.items[i], true
	}
	return models.CartItem{}, false
}

// TotalItems sums quantities across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity across all lines
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

type cartSnapshot struct {
	Items []models.CartItem `json:"items"`
}

func (c *Cart) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(cartSnapshot{Items: c.Items()})
}

// UnmarshalSnapshot restores the lines. Lines sharing a key are merged and
// lines without a positive quantity are dropped.
func (c *Cart) UnmarshalSnapshot(data []byte) error {
	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	c.Clear()
	for _, item := range snap.Items {
		if item.Quantity <= 0 {
			continue
		}
		c.AddItem(item)
	}
	return nil
}
