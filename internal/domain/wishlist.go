package domain

// WishlistState is the set of liked products, deduplicated by product ID.
type WishlistState struct {
	Items []Product `json:"items"`
}

// Contains reports whether productID is in the wishlist.
func (s WishlistState) Contains(productID string) bool {
	for _, p := range s.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to callers.
func (s WishlistState) Clone() WishlistState {
	out := WishlistState{Items: make([]Product, len(s.Items))}
	for i, p := range s.Items {
		out.Items[i] = p.Clone()
	}
	return out
}

// RemoteWishlistItem is one entry of the backend wishlist payload.
type RemoteWishlistItem struct {
	ID      string  `json:"id,omitempty"`
	Product Product `json:"product"`
}

// RemoteWishlist is the backend wishlist payload: {items: [{product}]}.
type RemoteWishlist struct {
	Items []RemoteWishlistItem `json:"items"`
}

// Products flattens the payload into the local representation, dropping
// duplicate product IDs.
func (w RemoteWishlist) Products() []Product {
	seen := make(map[string]struct{}, len(w.Items))
	out := make([]Product, 0, len(w.Items))
	for _, item := range w.Items {
		if _, dup := seen[item.Product.ID]; dup {
			continue
		}
		seen[item.Product.ID] = struct{}{}
		out = append(out, item.Product)
	}
	return out
}
