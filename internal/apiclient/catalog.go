package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukerupert/atelier/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := map[string]string{}
	if filter.CategoryID != "" {
		query["category"] = filter.CategoryID
	}
	if filter.Search != "" {
		query["search"] = filter.Search
	}

	var products []domain.Product
	err := c.do(ctx, call{op: "catalog.list", method: http.MethodGet, path: "/products", query: query, out: &products})
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, call{op: "catalog.get", method: http.MethodGet, path: "/products/" + url.PathEscape(id), out: &p})
	return p, err
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := c.do(ctx, call{op: "catalog.categories", method: http.MethodGet, path: "/categories", out: &categories})
	return categories, err
}
