package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartState_Total_BulkThreshold(t *testing.T) {
	p := bulkProduct()

	below := CartState{Items: []CartItem{{Product: p, Quantity: 49}}}
	assert.True(t, below.Total().Equal(decimal.NewFromInt(4900)), "got %s", below.Total())

	at := CartState{Items: []CartItem{{Product: p, Quantity: 50}}}
	assert.True(t, at.Total().Equal(decimal.NewFromInt(4000)), "got %s", at.Total())
}

func TestCartState_TotalAndCount(t *testing.T) {
	mug := Product{ID: "mug", SellingPrice: decimal.RequireFromString("12.50")}
	tee := Product{ID: "tee", SellingPrice: decimal.NewFromInt(20)}

	s := CartState{Items: []CartItem{
		{Product: mug, Quantity: 2},
		{Product: tee, Quantity: 3},
	}}

	assert.True(t, s.Total().Equal(decimal.NewFromInt(85)))
	assert.Equal(t, 5, s.ItemCount())
	assert.Equal(t, 1, s.Find("tee"))
	assert.Equal(t, -1, s.Find("hat"))
}

func TestCartState_EmptyTotal(t *testing.T) {
	assert.True(t, CartState{}.Total().IsZero())
	assert.Equal(t, 0, CartState{}.ItemCount())
}

func TestCartState_CloneIsDeep(t *testing.T) {
	s := CartState{Items: []CartItem{{
		Product:  Product{ID: "mug", Images: []ProductImage{{URL: "a.jpg"}}, Category: &Category{ID: "c1"}},
		Quantity: 1,
	}}}

	c := s.Clone()
	c.Items[0].Quantity = 9
	c.Items[0].Product.Images[0].URL = "changed.jpg"
	c.Items[0].Product.Category.ID = "c2"

	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, "a.jpg", s.Items[0].Product.Images[0].URL)
	assert.Equal(t, "c1", s.Items[0].Product.Category.ID)
}

func TestRemoteWishlist_ProductsDeduplicates(t *testing.T) {
	w := RemoteWishlist{Items: []RemoteWishlistItem{
		{Product: Product{ID: "a"}},
		{Product: Product{ID: "b"}},
		{Product: Product{ID: "a"}},
	}}

	got := w.Products()
	assert.Len(t, got, 2)
	assert.True(t, WishlistState{Items: got}.Contains("b"))
}
