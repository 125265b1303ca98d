package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/shopspring/decimal"
)

// CustomOrderAPI is the backend surface of the custom order workflow.
type CustomOrderAPI interface {
	CreateCustomOrder(ctx context.Context, req domain.CustomOrderRequest) (domain.CustomOrder, error)
	ListMyCustomOrders(ctx context.Context) ([]domain.CustomOrder, error)
	GetCustomOrder(ctx context.Context, id string) (domain.CustomOrder, error)
	ListAllCustomOrders(ctx context.Context, status *domain.CustomOrderStatus) ([]domain.CustomOrder, error)
	ApproveCustomOrder(ctx context.Context, id string, d domain.PriceDecision) (domain.CustomOrder, error)
	QuoteCustomOrder(ctx context.Context, id string, d domain.PriceDecision) (domain.CustomOrder, error)
	RejectCustomOrder(ctx context.Context, id string, r domain.Rejection) (domain.CustomOrder, error)
	UpdateCustomOrderStatus(ctx context.Context, id string, u domain.StatusUpdate) (domain.CustomOrder, error)
	PayCustomOrder(ctx context.Context, id string) (domain.CustomOrder, error)
}

// CustomOrderService drives the bespoke order negotiation.
//
// Transition legality is owned by the backend: the service never refuses an
// action because of the record's current status, and never changes local
// state before the backend has accepted the call. Use
// domain.AvailableActions to decide which actions to offer.
type CustomOrderService interface {
	// Create submits a new request. The payload shape is validated first.
	Create(ctx context.Context, req domain.CustomOrderRequest) (domain.CustomOrder, error)

	// ListMine returns the caller's requests.
	ListMine(ctx context.Context) ([]domain.CustomOrder, error)

	Get(ctx context.Context, id string) (domain.CustomOrder, error)

	// AdminList returns all requests, optionally filtered by status.
	AdminList(ctx context.Context, status *domain.CustomOrderStatus) ([]domain.CustomOrder, error)

	Approve(ctx context.Context, id string, agreedPrice decimal.Decimal, adminNote string) (domain.CustomOrder, error)
	Quote(ctx context.Context, id string, agreedPrice decimal.Decimal, adminNote string) (domain.CustomOrder, error)
	Reject(ctx context.Context, id string, adminNote string) (domain.CustomOrder, error)

	// UpdateStatus moves a paid request through fulfillment. Only
	// PROCESSING, SHIPPED and DELIVERED are accepted as targets.
	UpdateStatus(ctx context.Context, id string, status domain.CustomOrderStatus) (domain.CustomOrder, error)

	// Pay settles an approved request on the user's behalf.
	Pay(ctx context.Context, id string) (domain.CustomOrder, error)
}

type customOrderService struct {
	api     CustomOrderAPI
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// NewCustomOrderService creates a new CustomOrderService instance
func NewCustomOrderService(api CustomOrderAPI, opts ...Option) CustomOrderService {
	o := buildOptions(opts)
	return &customOrderService{
		api:     api,
		logger:  o.logger.With("component", "custom_orders"),
		metrics: o.metrics,
	}
}

func (s *customOrderService) Create(ctx context.Context, req domain.CustomOrderRequest) (domain.CustomOrder, error) {
	const op = "customorder.create"

	req.ItemName = strings.TrimSpace(req.ItemName)
	req.Description = strings.TrimSpace(req.Description)
	if err := domain.Validate(op, req); err != nil {
		s.metrics.CustomOrderAction(string(domain.ActionSubmit), telemetry.OutcomeRejected)
		return domain.CustomOrder{}, err
	}

	return s.act(ctx, domain.ActionSubmit, "", func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.CreateCustomOrder(ctx, req)
	})
}

func (s *customOrderService) ListMine(ctx context.Context) ([]domain.CustomOrder, error) {
	return s.api.ListMyCustomOrders(ctx)
}

func (s *customOrderService) Get(ctx context.Context, id string) (domain.CustomOrder, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CustomOrder{}, ErrMissingID
	}
	return s.api.GetCustomOrder(ctx, id)
}

func (s *customOrderService) AdminList(ctx context.Context, status *domain.CustomOrderStatus) ([]domain.CustomOrder, error) {
	return s.api.ListAllCustomOrders(ctx, status)
}

func (s *customOrderService) Approve(ctx context.Context, id string, agreedPrice decimal.Decimal, adminNote string) (domain.CustomOrder, error) {
	d := domain.PriceDecision{AgreedPrice: agreedPrice, AdminNote: strings.TrimSpace(adminNote)}
	if err := s.checkDecision("customorder.approve", domain.ActionApprove, id, d); err != nil {
		return domain.CustomOrder{}, err
	}

	return s.act(ctx, domain.ActionApprove, id, func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.ApproveCustomOrder(ctx, id, d)
	})
}

func (s *customOrderService) Quote(ctx context.Context, id string, agreedPrice decimal.Decimal, adminNote string) (domain.CustomOrder, error) {
	d := domain.PriceDecision{AgreedPrice: agreedPrice, AdminNote: strings.TrimSpace(adminNote)}
	if err := s.checkDecision("customorder.quote", domain.ActionQuote, id, d); err != nil {
		return domain.CustomOrder{}, err
	}

	return s.act(ctx, domain.ActionQuote, id, func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.QuoteCustomOrder(ctx, id, d)
	})
}

func (s *customOrderService) Reject(ctx context.Context, id string, adminNote string) (domain.CustomOrder, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CustomOrder{}, ErrMissingID
	}
	r := domain.Rejection{AdminNote: strings.TrimSpace(adminNote)}
	if len(r.AdminNote) > 2000 {
		return domain.CustomOrder{}, ErrRejectionNoteLong
	}

	return s.act(ctx, domain.ActionReject, id, func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.RejectCustomOrder(ctx, id, r)
	})
}

func (s *customOrderService) UpdateStatus(ctx context.Context, id string, status domain.CustomOrderStatus) (domain.CustomOrder, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CustomOrder{}, ErrMissingID
	}
	if !status.IsFulfillment() {
		s.metrics.CustomOrderAction(string(domain.ActionUpdateStatus), telemetry.OutcomeRejected)
		return domain.CustomOrder{}, ErrNotFulfillment
	}

	return s.act(ctx, domain.ActionUpdateStatus, id, func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.UpdateCustomOrderStatus(ctx, id, domain.StatusUpdate{Status: status})
	})
}

func (s *customOrderService) Pay(ctx context.Context, id string) (domain.CustomOrder, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CustomOrder{}, ErrMissingID
	}

	return s.act(ctx, domain.ActionPay, id, func(ctx context.Context) (domain.CustomOrder, error) {
		return s.api.PayCustomOrder(ctx, id)
	})
}

func (s *customOrderService) checkDecision(op string, action domain.CustomOrderAction, id string, d domain.PriceDecision) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	if err := domain.Validate(op, d); err != nil {
		s.metrics.CustomOrderAction(string(action), telemetry.OutcomeRejected)
		return err
	}
	return nil
}

// act performs one workflow call. Failures are returned untouched so the
// caller can show them and let the user retry the decision.
func (s *customOrderService) act(ctx context.Context, action domain.CustomOrderAction, id string, fn func(context.Context) (domain.CustomOrder, error)) (domain.CustomOrder, error) {
	ctx, finish := telemetry.StartSpan(ctx, "customorder."+string(action), id)
	defer finish()

	order, err := fn(ctx)
	if err != nil {
		s.metrics.CustomOrderAction(string(action), telemetry.OutcomeFailed)
		s.logger.Warn("custom order action failed",
			"action", action,
			"custom_order_id", id,
			"code", domain.ErrorCode(err),
			"error", err,
		)
		return domain.CustomOrder{}, err
	}

	s.metrics.CustomOrderAction(string(action), telemetry.OutcomeOK)
	telemetry.AddBreadcrumb("custom_order", string(action), map[string]interface{}{
		"custom_order_id": order.ID,
		"status":          string(order.Status),
	})
	s.logger.Info("custom order updated",
		"action", action,
		"custom_order_id", order.ID,
		"status", order.Status,
	)
	return order, nil
}
