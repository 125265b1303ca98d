package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/atelier/internal/domain"
)

// PlaceOrder turns the caller's server cart into a standard order.
func (c *Client) PlaceOrder(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error) {
	var o domain.Order
	err := c.do(ctx, call{op: "order.place", method: http.MethodPost, path: "/orders", body: req, out: &o})
	return o, err
}

func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, call{op: "order.list_mine", method: http.MethodGet, path: "/orders/my", out: &orders})
	return orders, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := c.do(ctx, call{op: "order.get", method: http.MethodGet, path: "/orders/" + url.PathEscape(id), out: &o})
	return o, err
}
