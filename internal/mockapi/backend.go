// Package mockapi is an in-memory development backend serving the storefront
// REST surface. It owns the rules the client defers to the server: additive
// cart increments, toggle semantics for the wishlist and legality of custom
// order transitions.
package mockapi

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart         = domain.Errorf(domain.EINVALID, "", "cart is empty")
	ErrInvalidQuantity   = domain.Errorf(domain.EINVALID, "", "quantity must be at least 1")
	ErrUnknownReference  = domain.Errorf(domain.EINVALID, "", "reference product does not exist")
	ErrNotFulfillment    = domain.Errorf(domain.EINVALID, "", "status must be one of PROCESSING, SHIPPED, DELIVERED")
	ErrInsufficientStock = domain.Errorf(domain.ECONFLICT, "", "insufficient stock")
)

type cartLine struct {
	id        string
	productID string
	quantity  int
}

// Backend holds all server-side state. Users are identified by ID only;
// every user starts with an empty cart and wishlist.
type Backend struct {
	mu sync.Mutex

	products     map[string]domain.Product
	productOrder []string
	categories   []domain.Category

	carts     map[string][]cartLine
	wishlists map[string][]string

	customOrders     map[string]*domain.CustomOrder
	customOrderOwner map[string]string
	customOrderSeq   []string

	orders     map[string]*domain.Order
	orderOwner map[string]string
	orderSeq   []string

	now   func() time.Time
	newID func(prefix string) string
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithClock replaces time.Now for CreatedAt/UpdatedAt stamps.
func WithClock(now func() time.Time) BackendOption {
	return func(b *Backend) { b.now = now }
}

// NewBackend returns an empty backend. Call Seed for a sample catalog.
func NewBackend(opts ...BackendOption) *Backend {
	b := &Backend{
		products:         make(map[string]domain.Product),
		carts:            make(map[string][]cartLine),
		wishlists:        make(map[string][]string),
		customOrders:     make(map[string]*domain.CustomOrder),
		customOrderOwner: make(map[string]string),
		orders:           make(map[string]*domain.Order),
		orderOwner:       make(map[string]string),
		now:              time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()[:8]
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// =============================================================================
// CATALOG
// =============================================================================

// PutProduct adds or replaces a product. Its category is registered too.
func (b *Backend) PutProduct(p domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.products[p.ID]; !exists {
		b.productOrder = append(b.productOrder, p.ID)
	}
	b.products[p.ID] = p.Clone()

	if p.Category != nil && !slices.ContainsFunc(b.categories, func(c domain.Category) bool { return c.ID == p.Category.ID }) {
		b.categories = append(b.categories, *p.Category)
	}
}

func (b *Backend) ListProducts(filter domain.ProductFilter) []domain.Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	search := strings.ToLower(filter.Search)
	out := make([]domain.Product, 0, len(b.productOrder))
	for _, id := range b.productOrder {
		p := b.products[id]
		if filter.CategoryID != "" && (p.Category == nil || p.Category.ID != filter.CategoryID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func (b *Backend) Product(id string) (domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.products[id]
	if !ok {
		return domain.Product{}, domain.NotFound("catalog.get", "product", id)
	}
	return p.Clone(), nil
}

func (b *Backend) Categories() []domain.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.categories)
}

// =============================================================================
// CART
// =============================================================================

// Cart returns the user's cart with current product snapshots.
func (b *Backend) Cart(userID string) domain.RemoteCart {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cartLocked(userID)
}

func (b *Backend) cartLocked(userID string) domain.RemoteCart {
	lines := b.carts[userID]
	out := domain.RemoteCart{Items: make([]domain.CartItem, 0, len(lines))}
	for _, l := range lines {
		out.Items = append(out.Items, domain.CartItem{
			ID:       l.id,
			Product:  b.products[l.productID].Clone(),
			Quantity: l.quantity,
		})
	}
	return out
}

// AddToCart increments the line for productID, creating it if needed.
func (b *Backend) AddToCart(userID, productID string, quantity int) (domain.RemoteCart, error) {
	if quantity < 1 {
		return domain.RemoteCart{}, ErrInvalidQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.products[productID]; !ok {
		return domain.RemoteCart{}, domain.NotFound("cart.add", "product", productID)
	}

	lines := b.carts[userID]
	if i := slices.IndexFunc(lines, func(l cartLine) bool { return l.productID == productID }); i >= 0 {
		lines[i].quantity += quantity
	} else {
		lines = append(lines, cartLine{id: b.newID("ci"), productID: productID, quantity: quantity})
	}
	b.carts[userID] = lines

	return b.cartLocked(userID), nil
}

// SetCartQuantity sets the line quantity. A non-positive quantity removes it.
func (b *Backend) SetCartQuantity(userID, productID string, quantity int) (domain.RemoteCart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := b.carts[userID]
	i := slices.IndexFunc(lines, func(l cartLine) bool { return l.productID == productID })
	if i < 0 {
		return domain.RemoteCart{}, domain.NotFound("cart.update", "cart item", productID)
	}

	if quantity <= 0 {
		b.carts[userID] = slices.Delete(lines, i, i+1)
	} else {
		lines[i].quantity = quantity
	}
	return b.cartLocked(userID), nil
}

// RemoveFromCart is idempotent.
func (b *Backend) RemoveFromCart(userID, productID string) domain.RemoteCart {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.carts[userID] = slices.DeleteFunc(b.carts[userID], func(l cartLine) bool { return l.productID == productID })
	return b.cartLocked(userID)
}

// =============================================================================
// WISHLIST
// =============================================================================

func (b *Backend) Wishlist(userID string) domain.RemoteWishlist {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.wishlistLocked(userID)
}

func (b *Backend) wishlistLocked(userID string) domain.RemoteWishlist {
	ids := b.wishlists[userID]
	out := domain.RemoteWishlist{Items: make([]domain.RemoteWishlistItem, 0, len(ids))}
	for _, id := range ids {
		out.Items = append(out.Items, domain.RemoteWishlistItem{Product: b.products[id].Clone()})
	}
	return out
}

// ToggleWishlist flips membership of productID and reports whether it is
// now present.
func (b *Backend) ToggleWishlist(userID, productID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.products[productID]; !ok {
		return false, domain.NotFound("wishlist.toggle", "product", productID)
	}

	ids := b.wishlists[userID]
	if i := slices.Index(ids, productID); i >= 0 {
		b.wishlists[userID] = slices.Delete(ids, i, i+1)
		return false, nil
	}
	b.wishlists[userID] = append(ids, productID)
	return true, nil
}

// =============================================================================
// CUSTOM ORDERS
// =============================================================================

// CreateCustomOrder records a new request in REQUESTED.
func (b *Backend) CreateCustomOrder(userID string, req domain.CustomOrderRequest) (domain.CustomOrder, error) {
	if err := domain.Validate("customorder.create", req); err != nil {
		return domain.CustomOrder{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	status, _ := domain.NextStatus("", domain.ActionSubmit, "")
	now := b.now()
	o := &domain.CustomOrder{
		ID:                 b.newID("co"),
		ItemName:           req.ItemName,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Budget:             req.Budget,
		ReferenceProductID: req.ReferenceProductID,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.ReferenceProductID != nil {
		p, ok := b.products[*req.ReferenceProductID]
		if !ok {
			return domain.CustomOrder{}, ErrUnknownReference
		}
		ref := p.Clone()
		o.ReferenceProduct = &ref
	}

	b.customOrders[o.ID] = o
	b.customOrderOwner[o.ID] = userID
	b.customOrderSeq = append(b.customOrderSeq, o.ID)
	return cloneCustomOrder(o), nil
}

// MyCustomOrders lists the user's requests, newest first.
func (b *Backend) MyCustomOrders(userID string) []domain.CustomOrder {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []domain.CustomOrder{}
	for i := len(b.customOrderSeq) - 1; i >= 0; i-- {
		id := b.customOrderSeq[i]
		if b.customOrderOwner[id] == userID {
			out = append(out, cloneCustomOrder(b.customOrders[id]))
		}
	}
	return out
}

// CustomOrder returns one request. Only its owner or an admin may see it;
// anyone else gets ENOTFOUND.
func (b *Backend) CustomOrder(userID string, admin bool, id string) (domain.CustomOrder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.customOrders[id]
	if !ok || (!admin && b.customOrderOwner[id] != userID) {
		return domain.CustomOrder{}, domain.NotFound("customorder.get", "custom order", id)
	}
	return cloneCustomOrder(o), nil
}

// AllCustomOrders is the admin listing, newest first.
func (b *Backend) AllCustomOrders(status *domain.CustomOrderStatus) []domain.CustomOrder {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []domain.CustomOrder{}
	for i := len(b.customOrderSeq) - 1; i >= 0; i-- {
		o := b.customOrders[b.customOrderSeq[i]]
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, cloneCustomOrder(o))
	}
	return out
}

func (b *Backend) ApproveCustomOrder(id string, d domain.PriceDecision) (domain.CustomOrder, error) {
	return b.decide(id, domain.ActionApprove, d)
}

func (b *Backend) QuoteCustomOrder(id string, d domain.PriceDecision) (domain.CustomOrder, error) {
	return b.decide(id, domain.ActionQuote, d)
}

func (b *Backend) decide(id string, action domain.CustomOrderAction, d domain.PriceDecision) (domain.CustomOrder, error) {
	if err := domain.Validate("customorder."+string(action), d); err != nil {
		return domain.CustomOrder{}, err
	}
	return b.transition(id, action, "", func(o *domain.CustomOrder) {
		o.AgreedPrice = decimal.NewNullDecimal(d.AgreedPrice)
		o.AdminNote = note(d.AdminNote)
	})
}

func (b *Backend) RejectCustomOrder(id string, r domain.Rejection) (domain.CustomOrder, error) {
	return b.transition(id, domain.ActionReject, "", func(o *domain.CustomOrder) {
		o.AdminNote = note(r.AdminNote)
	})
}

// UpdateCustomOrderStatus moves a paid request between fulfillment statuses.
func (b *Backend) UpdateCustomOrderStatus(id string, u domain.StatusUpdate) (domain.CustomOrder, error) {
	if !u.Status.IsFulfillment() {
		return domain.CustomOrder{}, ErrNotFulfillment
	}
	return b.transition(id, domain.ActionUpdateStatus, u.Status, nil)
}

// PayCustomOrder settles an approved request at its agreed price and links
// a new standard order to it.
func (b *Backend) PayCustomOrder(userID, id string) (domain.CustomOrder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.customOrders[id]
	if !ok || b.customOrderOwner[id] != userID {
		return domain.CustomOrder{}, domain.NotFound("customorder.pay", "custom order", id)
	}

	next, ok := domain.NextStatus(o.Status, domain.ActionPay, "")
	if !ok {
		return domain.CustomOrder{}, illegal(o, domain.ActionPay)
	}

	now := b.now()
	customOrderID := o.ID
	order := &domain.Order{
		ID: b.newID("ord"),
		Items: []domain.OrderItem{{
			Name:      o.ItemName,
			Quantity:  o.Quantity,
			UnitPrice: o.AgreedPrice.Decimal.Div(decimal.NewFromInt(int64(o.Quantity))).Round(2),
			Subtotal:  o.AgreedPrice.Decimal,
		}},
		Total:         o.AgreedPrice.Decimal,
		Status:        domain.OrderPaid,
		CustomOrderID: &customOrderID,
		CreatedAt:     now,
	}
	if o.ReferenceProductID != nil {
		order.Items[0].ProductID = *o.ReferenceProductID
	}
	b.storeOrderLocked(userID, order)

	o.Status = next
	o.OrderID = &order.ID
	o.UpdatedAt = now
	return cloneCustomOrder(o), nil
}

// transition applies action when the workflow table allows it from the
// current status, then runs mutate on the record.
func (b *Backend) transition(id string, action domain.CustomOrderAction, target domain.CustomOrderStatus, mutate func(*domain.CustomOrder)) (domain.CustomOrder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.customOrders[id]
	if !ok {
		return domain.CustomOrder{}, domain.NotFound("customorder."+string(action), "custom order", id)
	}

	next, ok := domain.NextStatus(o.Status, action, target)
	if !ok {
		return domain.CustomOrder{}, illegal(o, action)
	}

	if mutate != nil {
		mutate(o)
	}
	o.Status = next
	o.UpdatedAt = b.now()
	return cloneCustomOrder(o), nil
}

func illegal(o *domain.CustomOrder, action domain.CustomOrderAction) error {
	return domain.Conflict("customorder."+string(action),
		"cannot "+strings.ReplaceAll(string(action), "-", " ")+" a custom order in status "+string(o.Status))
}

func note(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func cloneCustomOrder(o *domain.CustomOrder) domain.CustomOrder {
	out := *o
	if o.ReferenceProduct != nil {
		p := o.ReferenceProduct.Clone()
		out.ReferenceProduct = &p
	}
	return out
}

// =============================================================================
// ORDERS
// =============================================================================

// PlaceOrder converts the user's cart into a pending order at effective
// prices, decrements stock and empties the cart.
func (b *Backend) PlaceOrder(userID string, req domain.CheckoutRequest) (domain.Order, error) {
	if err := domain.Validate("order.place", req); err != nil {
		return domain.Order{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	lines := b.carts[userID]
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	for _, l := range lines {
		if !b.products[l.productID].InStock(l.quantity) {
			return domain.Order{}, ErrInsufficientStock
		}
	}

	addr := req.ShippingAddress
	order := &domain.Order{
		ID:              b.newID("ord"),
		Items:           make([]domain.OrderItem, 0, len(lines)),
		Total:           decimal.Zero,
		Status:          domain.OrderPending,
		ShippingAddress: &addr,
		CreatedAt:       b.now(),
	}
	for _, l := range lines {
		p := b.products[l.productID]
		item := domain.CartItem{Product: p, Quantity: l.quantity}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  l.quantity,
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
		order.Total = order.Total.Add(item.Subtotal())

		p.StockQuantity -= l.quantity
		b.products[p.ID] = p
	}

	b.storeOrderLocked(userID, order)
	delete(b.carts, userID)
	return *order, nil
}

func (b *Backend) storeOrderLocked(userID string, o *domain.Order) {
	b.orders[o.ID] = o
	b.orderOwner[o.ID] = userID
	b.orderSeq = append(b.orderSeq, o.ID)
}

// MyOrders lists the user's orders, newest first.
func (b *Backend) MyOrders(userID string) []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []domain.Order{}
	for i := len(b.orderSeq) - 1; i >= 0; i-- {
		id := b.orderSeq[i]
		if b.orderOwner[id] == userID {
			out = append(out, *b.orders[id])
		}
	}
	return out
}

func (b *Backend) Order(userID string, admin bool, id string) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[id]
	if !ok || (!admin && b.orderOwner[id] != userID) {
		return domain.Order{}, domain.NotFound("order.get", "order", id)
	}
	return *o, nil
}
