package store

import (
	"encoding/json"

	"github.com/raushankrgupta/shoplungu/models"
)

// Wishlist owns the saved items, at most one per product id. The zero value is
// an empty wishlist.
type Wishlist struct {
	items []models.WishlistItem
	index map[string]struct{}
}

func NewWishlist() *Wishlist {
	return &Wishlist{index: make(map[string]struct{})}
}

// AddItem appends item unless its product id is already saved. It reports
// whether the item was added.
func (w *Wishlist) AddItem(item models.WishlistItem) bool {
	if w.IsInWishlist(item.ProductID) {
		return false
	}
	if w.index == nil {
		w.index = make(map[string]struct{})
	}
	w.items = append(w.items, item)
	w.index[item.ProductID] = struct{}{}
	return true
}

func (w *Wishlist) RemoveItem(productID string) {
	if !w.IsInWishlist(productID) {
		return
	}
	delete(w.index, productID)
	for i := range w.items {
		if w.items[i].ProductID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return
		}
	}
}

func (w *Wishlist) IsInWishlist(productID string) bool {
	_, ok := w.index[productID]
	return ok
}

func (w *Wishlist) Clear() {
	w.items = nil
	w.index = make(map[string]struct{})
}

// Items returns a copy of the saved items
func (w *Wishlist) Items() []models.WishlistItem {
	return append([]models.WishlistItem{}, w.items...)
}

func (w *Wishlist) Len() int {
	return len(w.items)
}

type wishlistSnapshot struct {
	Items []models.WishlistItem `json:"items"`
}

func (w *Wishlist) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(wishlistSnapshot{Items: w.Items()})
}

// UnmarshalSnapshot restores the items. Duplicate ids in the snapshot keep the
// first occurrence.
func (w *Wishlist) UnmarshalSnapshot(data []byte) error {
	var snap wishlistSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	w.Clear()
	for _, item := range snap.Items {
		w.AddItem(item)
	}
	return nil
}
