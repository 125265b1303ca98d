package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/atelier/internal/domain"
)

func (c *Client) CreateCustomOrder(ctx context.Context, req domain.CustomOrderRequest) (domain.CustomOrder, error) {
	var o domain.CustomOrder
	err := c.do(ctx, call{op: "customorder.create", method: http.MethodPost, path: "/custom-orders", body: req, out: &o})
	return o, err
}

func (c *Client) ListMyCustomOrders(ctx context.Context) ([]domain.CustomOrder, error) {
	var list []domain.CustomOrder
	err := c.do(ctx, call{op: "customorder.list_mine", method: http.MethodGet, path: "/custom-orders/my", out: &list})
	return list, err
}

func (c *Client) GetCustomOrder(ctx context.Context, id string) (domain.CustomOrder, error) {
	var o domain.CustomOrder
	err := c.do(ctx, call{op: "customorder.get", method: http.MethodGet, path: "/custom-orders/" + url.PathEscape(id), out: &o})
	return o, err
}

// ListAllCustomOrders is the admin listing. A nil status lists everything.
func (c *Client) ListAllCustomOrders(ctx context.Context, status *domain.CustomOrderStatus) ([]domain.CustomOrder, error) {
	cl := call{op: "customorder.admin_list", method: http.MethodGet, path: "/custom-orders/admin/all"}
	if status != nil {
		cl.query = map[string]string{"status": string(*status)}
	}

	var list []domain.CustomOrder
	cl.out = &list
	err := c.do(ctx, cl)
	return list, err
}

func (c *Client) ApproveCustomOrder(ctx context.Context, id string, d domain.PriceDecision) (domain.CustomOrder, error) {
	return c.adminAction(ctx, "customorder.approve", id, "approve", d)
}

func (c *Client) QuoteCustomOrder(ctx context.Context, id string, d domain.PriceDecision) (domain.CustomOrder, error) {
	return c.adminAction(ctx, "customorder.quote", id, "quote", d)
}

func (c *Client) RejectCustomOrder(ctx context.Context, id string, r domain.Rejection) (domain.CustomOrder, error) {
	return c.adminAction(ctx, "customorder.reject", id, "reject", r)
}

func (c *Client) UpdateCustomOrderStatus(ctx context.Context, id string, u domain.StatusUpdate) (domain.CustomOrder, error) {
	return c.adminAction(ctx, "customorder.update_status", id, "status", u)
}

// PayCustomOrder settles an approved request and links the resulting order.
func (c *Client) PayCustomOrder(ctx context.Context, id string) (domain.CustomOrder, error) {
	var o domain.CustomOrder
	err := c.do(ctx, call{op: "customorder.pay", method: http.MethodPost, path: "/custom-orders/" + url.PathEscape(id) + "/pay", out: &o})
	return o, err
}

func (c *Client) adminAction(ctx context.Context, op, id, action string, body interface{}) (domain.CustomOrder, error) {
	var o domain.CustomOrder
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodPut,
		path:   "/custom-orders/admin/" + url.PathEscape(id) + "/" + action,
		body:   body,
		out:    &o,
	})
	return o, err
}
