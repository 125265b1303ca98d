package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CUSTOM ORDER WORKFLOW
// =============================================================================

// CustomOrderStatus is the lifecycle state of a bespoke order request.
type CustomOrderStatus string

const (
	CustomOrderRequested  CustomOrderStatus = "REQUESTED"
	CustomOrderQuoted     CustomOrderStatus = "QUOTED"
	CustomOrderApproved   CustomOrderStatus = "APPROVED"
	CustomOrderPaid       CustomOrderStatus = "PAID"
	CustomOrderProcessing CustomOrderStatus = "PROCESSING"
	CustomOrderShipped    CustomOrderStatus = "SHIPPED"
	CustomOrderDelivered  CustomOrderStatus = "DELIVERED"
	CustomOrderRejected   CustomOrderStatus = "REJECTED"
)

// CustomOrderStatuses lists every status in pipeline order, REJECTED last.
var CustomOrderStatuses = []CustomOrderStatus{
	CustomOrderRequested,
	CustomOrderQuoted,
	CustomOrderApproved,
	CustomOrderPaid,
	CustomOrderProcessing,
	CustomOrderShipped,
	CustomOrderDelivered,
	CustomOrderRejected,
}

// FulfillmentStatuses are the targets an admin may pick with a status update.
var FulfillmentStatuses = []CustomOrderStatus{
	CustomOrderProcessing,
	CustomOrderShipped,
	CustomOrderDelivered,
}

// ParseCustomOrderStatus accepts any casing.
func ParseCustomOrderStatus(s string) (CustomOrderStatus, error) {
	status := CustomOrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range CustomOrderStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", Errorf(EINVALID, "customorder.status", "unknown custom order status %q", s)
}

// IsFulfillment reports whether s is a valid status-update target.
func (s CustomOrderStatus) IsFulfillment() bool {
	for _, f := range FulfillmentStatuses {
		if s == f {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s CustomOrderStatus) IsTerminal() bool {
	for _, t := range Transitions {
		if t.From == s {
			return false
		}
	}
	return true
}

func (s CustomOrderStatus) String() string { return string(s) }

// CustomOrderAction names a workflow step.
type CustomOrderAction string

const (
	ActionSubmit       CustomOrderAction = "submit"
	ActionQuote        CustomOrderAction = "quote"
	ActionApprove      CustomOrderAction = "approve"
	ActionReject       CustomOrderAction = "reject"
	ActionPay          CustomOrderAction = "pay"
	ActionUpdateStatus CustomOrderAction = "update-status"
)

// Actor is who performs a workflow step.
type Actor string

const (
	ActorUser  Actor = "user"
	ActorAdmin Actor = "admin"
)

// Transition is one row of the workflow table.
type Transition struct {
	From   CustomOrderStatus // "" for submission
	Action CustomOrderAction
	Actor  Actor
	To     CustomOrderStatus
}

// Transitions is the workflow as data. Legality is owned by the backend;
// the client uses this table to decide which controls to offer.
var Transitions = []Transition{
	{From: "", Action: ActionSubmit, Actor: ActorUser, To: CustomOrderRequested},
	{From: CustomOrderRequested, Action: ActionQuote, Actor: ActorAdmin, To: CustomOrderQuoted},
	{From: CustomOrderRequested, Action: ActionApprove, Actor: ActorAdmin, To: CustomOrderApproved},
	{From: CustomOrderRequested, Action: ActionReject, Actor: ActorAdmin, To: CustomOrderRejected},
	{From: CustomOrderQuoted, Action: ActionApprove, Actor: ActorAdmin, To: CustomOrderApproved},
	{From: CustomOrderQuoted, Action: ActionReject, Actor: ActorAdmin, To: CustomOrderRejected},
	{From: CustomOrderApproved, Action: ActionPay, Actor: ActorUser, To: CustomOrderPaid},
}

func init() {
	// Status updates are a free choice among the fulfillment statuses,
	// not a forward-only walk.
	for _, from := range []CustomOrderStatus{CustomOrderPaid, CustomOrderProcessing, CustomOrderShipped} {
		for _, to := range FulfillmentStatuses {
			Transitions = append(Transitions, Transition{From: from, Action: ActionUpdateStatus, Actor: ActorAdmin, To: to})
		}
	}
}

// NextStatus resolves the target of action from status. For
// ActionUpdateStatus the caller supplies the target in to.
func NextStatus(from CustomOrderStatus, action CustomOrderAction, to CustomOrderStatus) (CustomOrderStatus, bool) {
	for _, t := range Transitions {
		if t.From != from || t.Action != action {
			continue
		}
		if action == ActionUpdateStatus && t.To != to {
			continue
		}
		return t.To, true
	}
	return "", false
}

// CanTransition reports whether any action moves from to to.
func CanTransition(from, to CustomOrderStatus) bool {
	for _, t := range Transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// AvailableActions lists the distinct actions actor may take on status,
// in table order.
func AvailableActions(status CustomOrderStatus, actor Actor) []CustomOrderAction {
	var out []CustomOrderAction
	seen := make(map[CustomOrderAction]bool)
	for _, t := range Transitions {
		if t.From != status || t.Actor != actor || seen[t.Action] {
			continue
		}
		seen[t.Action] = true
		out = append(out, t.Action)
	}
	return out
}

// CustomOrderRequest is the submission payload. It is immutable once sent.
type CustomOrderRequest struct {
	ItemName           string          `json:"itemName" validate:"required,max=200"`
	Description        string          `json:"description" validate:"required,max=5000"`
	Quantity           int             `json:"quantity" validate:"gte=1"`
	Budget             decimal.Decimal `json:"budget" validate:"gte=0"`
	ReferenceProductID *string         `json:"referenceProductId,omitempty" validate:"omitempty,min=1"`
}

// CustomOrder is the backend record of a request and its negotiation.
type CustomOrder struct {
	ID                 string              `json:"id"`
	ItemName           string              `json:"itemName"`
	Description        string              `json:"description"`
	Quantity           int                 `json:"quantity"`
	Budget             decimal.Decimal     `json:"budget"`
	ReferenceProductID *string             `json:"referenceProductId,omitempty"`
	ReferenceProduct   *Product            `json:"referenceProduct,omitempty"`
	Status             CustomOrderStatus   `json:"status"`
	AdminNote          *string             `json:"adminNote"`
	AgreedPrice        decimal.NullDecimal `json:"agreedPrice"`
	OrderID            *string             `json:"orderId"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// ActionsFor is AvailableActions for this record's current status.
func (o CustomOrder) ActionsFor(actor Actor) []CustomOrderAction {
	return AvailableActions(o.Status, actor)
}

// PriceDecision is the body of approve and quote.
type PriceDecision struct {
	AgreedPrice decimal.Decimal `json:"agreedPrice" validate:"gte=0"`
	AdminNote   string          `json:"adminNote"`
}

// Rejection is the body of reject.
type Rejection struct {
	AdminNote string `json:"adminNote"`
}

// StatusUpdate is the body of an admin status change.
type StatusUpdate struct {
	Status CustomOrderStatus `json:"status"`
}
