package mockapi

import (
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	linens    = &domain.Category{ID: "cat-linens", Name: "Table linens"}
	ceramics  = &domain.Category{ID: "cat-ceramics", Name: "Ceramics"}
	furniture = &domain.Category{ID: "cat-furniture", Name: "Furniture"}
)

// SeedProducts is the sample catalog loaded by Seed.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:              "p-napkins",
			Name:            "Linen napkins",
			Description:     "Stonewashed linen, set of four",
			MRP:             decimal.NewFromInt(120),
			SellingPrice:    decimal.NewFromInt(100),
			BulkPrice:       decimal.NewNullDecimal(decimal.NewFromInt(80)),
			BulkMinQuantity: 50,
			StockQuantity:   500,
			Images:          []domain.ProductImage{{URL: "/img/napkins-1.jpg", IsPrimary: true}, {URL: "/img/napkins-2.jpg"}},
			Category:        linens,
		},
		{
			ID:              "p-runner",
			Name:            "Table runner",
			Description:     "Natural linen runner, 240cm",
			MRP:             decimal.NewFromInt(65),
			SellingPrice:    decimal.RequireFromString("54.50"),
			BulkPrice:       decimal.NewNullDecimal(decimal.NewFromInt(45)),
			BulkMinQuantity: 20,
			StockQuantity:   80,
			Images:          []domain.ProductImage{{URL: "/img/runner.jpg"}},
			Category:        linens,
		},
		{
			ID:            "p-mug",
			Name:          "Speckled mug",
			Description:   "Wheel-thrown stoneware mug",
			MRP:           decimal.NewFromInt(28),
			SellingPrice:  decimal.RequireFromString("24.00"),
			StockQuantity: 40,
			Images:        []domain.ProductImage{{URL: "/img/mug.jpg", IsPrimary: true}},
			Category:      ceramics,
		},
		{
			ID:            "p-bowl",
			Name:          "Serving bowl",
			Description:   "Large stoneware serving bowl",
			MRP:           decimal.NewFromInt(75),
			SellingPrice:  decimal.NewFromInt(68),
			StockQuantity: 12,
			Category:      ceramics,
		},
		{
			ID:            "p-stool",
			Name:          "Walnut stool",
			Description:   "Solid walnut, hand-rubbed oil finish",
			MRP:           decimal.NewFromInt(340),
			SellingPrice:  decimal.NewFromInt(310),
			StockQuantity: 3,
			Images:        []domain.ProductImage{{URL: "/img/stool.jpg", IsPrimary: true}},
			Category:      furniture,
		},
	}
}

// Seed loads the sample catalog.
func (b *Backend) Seed() {
	for _, p := range SeedProducts() {
		b.PutProduct(p)
	}
}
