// Package store holds the client-side cart and wishlist state containers.
// Local state is the presented truth: every mutation is applied and
// persisted immediately, then mirrored to the backend on a best-effort
// basis when a session is active.
package store

//go:generate mockgen -source=api.go -destination=mock_api_test.go -package=store

import (
	"context"

	"github.com/dukerupert/atelier/internal/domain"
)

// CartAPI is the slice of the backend used by CartStore.
type CartAPI interface {
	GetCart(ctx context.Context) (domain.RemoteCart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// WishlistAPI is the slice of the backend used by WishlistStore.
type WishlistAPI interface {
	GetWishlist(ctx context.Context) (domain.RemoteWishlist, error)
	ToggleWishlist(ctx context.Context, productID string) error
}

// Session reports whether a signed-in session exists. Without one the
// stores run in guest mode and never touch the network.
type Session interface {
	Active() bool
}
