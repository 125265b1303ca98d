package service

import (
	"context"
	"testing"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalogAPI implements CatalogAPI for testing
type mockCatalogAPI struct {
	filter   domain.ProductFilter
	products []domain.Product
	err      error
}

func (m *mockCatalogAPI) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	m.filter = filter
	return m.products, m.err
}

func (m *mockCatalogAPI) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.NotFound("catalog.get", "product", id)
}

func (m *mockCatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "c1", Name: "Furniture"}}, m.err
}

func TestCatalogService_TrimsFilter(t *testing.T) {
	api := &mockCatalogAPI{products: []domain.Product{{ID: "p1"}}}
	svc := NewCatalogService(api)

	got, err := svc.ListProducts(context.Background(), domain.ProductFilter{CategoryID: " c1 ", Search: "  oak "})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, domain.ProductFilter{CategoryID: "c1", Search: "oak"}, api.filter)
}

func TestCatalogService_GetProduct(t *testing.T) {
	svc := NewCatalogService(&mockCatalogAPI{products: []domain.Product{{ID: "p1", Name: "Mug"}}})
	ctx := context.Background()

	p, err := svc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)

	_, err = svc.GetProduct(ctx, "p2")
	assert.True(t, domain.IsCode(err, domain.ENOTFOUND))

	_, err = svc.GetProduct(ctx, "")
	assert.ErrorIs(t, err, ErrMissingID)
}
