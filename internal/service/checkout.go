package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/telemetry"
)

// OrderAPI is the standard-order surface of the backend.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error)
	ListMyOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}

// Cart is the part of the cart store checkout needs.
type Cart interface {
	ItemCount() int
	ClearCart(ctx context.Context)
}

// CheckoutService turns the cart into a standard order.
type CheckoutService interface {
	// Checkout places an order from the caller's server cart and, once the
	// backend confirms it, empties the local cart. On failure the local
	// cart is left untouched.
	Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error)

	ListMyOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}

type checkoutService struct {
	api     OrderAPI
	cart    Cart
	session Session
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(api OrderAPI, cart Cart, sess Session, opts ...Option) CheckoutService {
	o := buildOptions(opts)
	return &checkoutService{
		api:     api,
		cart:    cart,
		session: sess,
		logger:  o.logger.With("component", "checkout"),
		metrics: o.metrics,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error) {
	const op = "checkout.place"

	if s.session == nil || !s.session.Active() {
		return domain.Order{}, ErrSessionRequired
	}
	if s.cart.ItemCount() == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	req.Notes = strings.TrimSpace(req.Notes)
	req.ShippingAddress.Country = strings.ToUpper(strings.TrimSpace(req.ShippingAddress.Country))
	if err := domain.Validate(op, req); err != nil {
		return domain.Order{}, err
	}

	ctx, finish := telemetry.StartSpan(ctx, op, "")
	defer finish()

	order, err := s.api.PlaceOrder(ctx, req)
	if err != nil {
		s.logger.Warn("checkout failed", "code", domain.ErrorCode(err), "error", err)
		return domain.Order{}, err
	}

	s.cart.ClearCart(ctx)
	s.metrics.CheckoutCompleted()
	s.logger.Info("order placed", "order_id", order.ID, "total", order.Total.String())

	return order, nil
}

func (s *checkoutService) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	return s.api.ListMyOrders(ctx)
}

func (s *checkoutService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrMissingID
	}
	return s.api.GetOrder(ctx, id)
}
