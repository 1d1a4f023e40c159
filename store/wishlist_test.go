package store

import (
	"testing"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saved(id string, price float64) models.WishlistItem {
	return models.WishlistItem{ProductID: id, Name: "Item " + id, Price: price, Image: "/images/" + id + ".jpg", Brand: "Lungu"}
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	w := NewWishlist()
	assert.True(t, w.AddItem(saved("A", 10)))
	assert.False(t, w.AddItem(saved("A", 99)))
	assert.False(t, w.AddItem(saved("A", 10)))

	items := w.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].Price, "first write wins")
}

func TestWishlistRemoveAndQuery(t *testing.T) {
	w := NewWishlist()
	w.AddItem(saved("A", 10))
	w.AddItem(saved("B", 20))

	assert.True(t, w.IsInWishlist("A"))
	assert.False(t, w.IsInWishlist("C"))

	w.RemoveItem("C")
	assert.Equal(t, 2, w.Len())

	w.RemoveItem("A")
	assert.False(t, w.IsInWishlist("A"))
	require.Equal(t, 1, w.Len())
	assert.Equal(t, "B", w.Items()[0].ProductID)

	assert.True(t, w.AddItem(saved("A", 10)), "removed ids can be saved again")
}

func TestWishlistClear(t *testing.T) {
	w := NewWishlist()
	w.AddItem(saved("A", 10))
	w.Clear()

	assert.Empty(t, w.Items())
	assert.False(t, w.IsInWishlist("A"))
}

func TestWishlistSnapshotDropsDuplicates(t *testing.T) {
	w := NewWishlist()
	require.NoError(t, w.UnmarshalSnapshot([]byte(`{"items":[
		{"id":"A","name":"first","price":1},
		{"id":"A","name":"second","price":2},
		{"id":"B","name":"b","price":3}
	]}`)))

	require.Equal(t, 2, w.Len())
	assert.Equal(t, "first", w.Items()[0].Name)
	assert.True(t, w.IsInWishlist("B"))
}

func TestWishlistZeroValue(t *testing.T) {
	var w Wishlist
	assert.False(t, w.IsInWishlist("A"))
	w.RemoveItem("A")

	assert.True(t, w.AddItem(saved("A", 10)))
	assert.False(t, w.AddItem(saved("A", 10)))
	assert.True(t, w.IsInWishlist("A"))
	assert.Equal(t, 1, w.Len())
}
