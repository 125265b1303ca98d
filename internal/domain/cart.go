package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart. ID is assigned by the backend and stays
// empty for lines created locally before the first successful sync.
type CartItem struct {
	ID       string  `json:"id,omitempty"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// UnitPrice is the effective per-unit price for this line's quantity.
func (i CartItem) UnitPrice() decimal.Decimal {
	return i.Product.EffectivePrice(i.Quantity)
}

// Subtotal is quantity × effective price.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is the client-side cart. At most one item exists per product ID.
// IsOpen is the drawer visibility flag and is never persisted.
type CartState struct {
	Items  []CartItem `json:"items"`
	IsOpen bool       `json:"-"`
}

// Total is the sum of line subtotals.
func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount is the sum of line quantities.
func (s CartState) ItemCount() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// Find returns the index of the line for productID, or -1.
func (s CartState) Find(productID string) int {
	for i, item := range s.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy safe to hand to callers.
func (s CartState) Clone() CartState {
	out := CartState{IsOpen: s.IsOpen, Items: make([]CartItem, len(s.Items))}
	for i, item := range s.Items {
		item.Product = item.Product.Clone()
		out.Items[i] = item
	}
	return out
}

// RemoteCart is the backend cart payload: {items: [{id, product, quantity}]}.
type RemoteCart struct {
	Items []CartItem `json:"items"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	if p.Images != nil {
		p.Images = append([]ProductImage(nil), p.Images...)
	}
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	return p
}
