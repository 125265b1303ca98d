package service

import (
	"context"
	"strings"

	"github.com/dukerupert/atelier/internal/domain"
)

// CatalogAPI is the read-only product surface of the backend.
type CatalogAPI interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CatalogService browses products. Nothing is cached.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type catalogService struct {
	api CatalogAPI
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(api CatalogAPI) CatalogService {
	return &catalogService{api: api}
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CategoryID = strings.TrimSpace(filter.CategoryID)
	return s.api.ListProducts(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrMissingID
	}
	return s.api.GetProduct(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.api.ListCategories(ctx)
}
