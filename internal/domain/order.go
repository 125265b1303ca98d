package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the state of a standard (catalog) order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderPaid       OrderStatus = "PAID"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Address is a shipping destination.
type Address struct {
	FullName   string `json:"fullName" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required,len=2"`
	Phone      string `json:"phone" validate:"required,min=7"`
}

// CheckoutRequest turns the caller's server-side cart into an order.
type CheckoutRequest struct {
	ShippingAddress Address `json:"shippingAddress" validate:"required"`
	Notes           string  `json:"notes,omitempty" validate:"max=1000"`
}

// OrderItem is a priced line of a placed order.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is a standard order. Paid custom orders link to one through
// CustomOrder.OrderID.
type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
	CustomOrderID   *string         `json:"customOrderId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
