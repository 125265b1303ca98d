package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/atelier/internal/domain"
)

// GetWishlist fetches the authoritative server wishlist.
func (c *Client) GetWishlist(ctx context.Context) (domain.RemoteWishlist, error) {
	var w domain.RemoteWishlist
	err := c.do(ctx, call{op: "wishlist.get", method: http.MethodGet, path: "/wishlist", out: &w})
	return w, err
}

// ToggleWishlist flips server-side membership of productID. The endpoint is
// not idempotent: callers must only send it when the local state changed.
func (c *Client) ToggleWishlist(ctx context.Context, productID string) error {
	return c.do(ctx, call{
		op:     "wishlist.toggle",
		method: http.MethodPost,
		path:   "/wishlist/toggle/" + url.PathEscape(productID),
	})
}
