package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Category is the owning category of a product.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductImage is one entry of a product's ordered image list.
type ProductImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// Product is owned by the backend catalog and read-only to the client.
// Cart and wishlist entries keep a full snapshot of it.
type Product struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	MRP             decimal.Decimal     `json:"mrp"`
	SellingPrice    decimal.Decimal     `json:"sellingPrice"`
	BulkPrice       decimal.NullDecimal `json:"bulkPrice"`
	BulkMinQuantity int                 `json:"bulkMinQuantity"`
	StockQuantity   int                 `json:"stockQuantity"`
	Images          []ProductImage      `json:"images"`
	Category        *Category           `json:"category,omitempty"`
}

// PrimaryImage returns the image flagged primary. When none is flagged the
// first image is primary by convention; ok is false for products without images.
func (p Product) PrimaryImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// HasBulkPrice reports whether the product offers a bulk tier.
func (p Product) HasBulkPrice() bool {
	return p.BulkPrice.Valid
}

// EffectivePrice resolves the unit price for a line of the given quantity.
// Crossing the bulk threshold reprices the whole line, not just the marginal units.
func (p Product) EffectivePrice(quantity int) decimal.Decimal {
	if p.BulkPrice.Valid && quantity >= p.BulkMinQuantity {
		return p.BulkPrice.Decimal
	}
	return p.SellingPrice
}

// InStock reports whether at least quantity units are available.
func (p Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	CategoryID string
	Search     string
}
