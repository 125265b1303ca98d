package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/atelier/internal/domain"
)

type cartItemRequest struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// GetCart fetches the authoritative server cart.
func (c *Client) GetCart(ctx context.Context) (domain.RemoteCart, error) {
	var cart domain.RemoteCart
	err := c.do(ctx, call{op: "cart.get", method: http.MethodGet, path: "/cart", out: &cart})
	return cart, err
}

// AddCartItem increments the server-side quantity of productID.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) error {
	return c.do(ctx, call{
		op:     "cart.add",
		method: http.MethodPost,
		path:   "/cart/items",
		body:   cartItemRequest{ProductID: productID, Quantity: quantity},
	})
}

// UpdateCartItem sets the server-side quantity of productID.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	return c.do(ctx, call{
		op:     "cart.update",
		method: http.MethodPut,
		path:   "/cart/items/" + url.PathEscape(productID),
		body:   cartItemRequest{Quantity: quantity},
	})
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	return c.do(ctx, call{
		op:     "cart.remove",
		method: http.MethodDelete,
		path:   "/cart/items/" + url.PathEscape(productID),
	})
}
