package store

import (
	"context"
	"sync"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/shopspring/decimal"
)

// CartStore is the single source of truth for the active shopping cart.
//
// Mutations update local state and persist it under CartStorageKey while
// holding the lock. The backend request, if any, is issued afterwards so
// readers see the optimistic state while it is in flight. Two rapid calls
// produce two independent requests; the backend is expected to treat
// POST /cart/items as an additive increment.
type CartStore struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     domain.CartState
	listeners map[int]func(domain.CartState)
	nextID    int

	api      CartAPI
	mirror   mirror
	snapshot snapshot
	metrics  *telemetry.ClientMetrics
}

// cartSnapshot is the persisted shape: only the item list.
type cartSnapshot struct {
	Items []domain.CartItem `json:"items"`
}

// NewCartStore creates a cart and restores the persisted item list.
func NewCartStore(ctx context.Context, api CartAPI, sess Session, store storage.Storage, opts ...Option) *CartStore {
	o := buildOptions(opts)
	logger := o.logger.With("component", "cart")

	s := &CartStore{
		api:       api,
		listeners: make(map[int]func(domain.CartState)),
		mirror:    mirror{name: "cart", session: sess, logger: logger, metrics: o.metrics},
		snapshot:  snapshot{key: CartStorageKey, storage: store, logger: logger, metrics: o.metrics},
		metrics:   o.metrics,
	}

	var snap cartSnapshot
	s.snapshot.load(ctx, &snap)
	s.state.Items = snap.Items
	s.observe()

	return s
}

// AddItem increments the line for product, or appends one, and opens the
// cart. A quantity below 1 counts as 1.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.apply(ctx, "add", product.ID, func(st *domain.CartState) {
		if i := st.Find(product.ID); i >= 0 {
			st.Items[i].Quantity += quantity
		} else {
			st.Items = append(st.Items, domain.CartItem{Product: product.Clone(), Quantity: quantity})
		}
		st.IsOpen = true
	})

	s.mirror.call(ctx, "add", product.ID, func(ctx context.Context) error {
		return s.api.AddCartItem(ctx, product.ID, quantity)
	})
}

// RemoveItem drops the line for productID. The delete request is sent
// whether or not the line existed locally.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.apply(ctx, "remove", productID, func(st *domain.CartState) {
		kept := st.Items[:0]
		for _, item := range st.Items {
			if item.Product.ID != productID {
				kept = append(kept, item)
			}
		}
		st.Items = kept
	})

	s.mirror.call(ctx, "remove", productID, func(ctx context.Context) error {
		return s.api.RemoveCartItem(ctx, productID)
	})
}

// UpdateQuantity sets the quantity of productID's line. Non-positive
// quantities remove the line.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.apply(ctx, "update", productID, func(st *domain.CartState) {
		if i := st.Find(productID); i >= 0 {
			st.Items[i].Quantity = quantity
		}
	})

	s.mirror.call(ctx, "update", productID, func(ctx context.Context) error {
		return s.api.UpdateCartItem(ctx, productID, quantity)
	})
}

// SyncWithBackend replaces the local items with the server cart. Items that
// only existed locally are discarded. Without a session, or when the fetch
// fails, local state is left as it was.
func (s *CartStore) SyncWithBackend(ctx context.Context) {
	var remote domain.RemoteCart
	fetched := false

	s.mirror.call(ctx, "sync", "", func(ctx context.Context) error {
		var err error
		remote, err = s.api.GetCart(ctx)
		fetched = err == nil
		return err
	})
	if !fetched {
		return
	}

	s.apply(ctx, "sync", "", func(st *domain.CartState) {
		items := make([]domain.CartItem, len(remote.Items))
		for i, item := range remote.Items {
			item.Product = item.Product.Clone()
			items[i] = item
		}
		st.Items = items
	})
}

func (s *CartStore) OpenCart() {
	s.setOpen(true)
}

func (s *CartStore) CloseCart() {
	s.setOpen(false)
}

// ClearCart empties the cart locally. No request is made: it runs after a
// checkout has already consumed the server cart.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.apply(ctx, "clear", "", func(st *domain.CartState) {
		st.Items = []domain.CartItem{}
	})
}

// State returns a deep copy of the cart.
func (s *CartStore) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *CartStore) Items() []domain.CartItem {
	return s.State().Items
}

// Total is the cart total with bulk pricing applied per line.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount()
}

func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOpen
}

// Subscribe registers fn to receive a copy of the state after every change.
// Calls are serialized and arrive in mutation order; fn must not mutate the
// cart synchronously. The returned func removes the listener.
func (s *CartStore) Subscribe(fn func(domain.CartState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// apply mutates and persists under the lock, then notifies listeners.
func (s *CartStore) apply(ctx context.Context, op, productID string, fn func(*domain.CartState)) {
	s.mu.Lock()
	fn(&s.state)
	if s.state.Items == nil {
		s.state.Items = []domain.CartItem{}
	}
	s.snapshot.save(ctx, cartSnapshot{Items: s.state.Items})
	s.observe()
	state, listeners := s.state.Clone(), s.listenersLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.metrics.CartOp(op)
	telemetry.AddBreadcrumb("cart", op, map[string]interface{}{"product_id": productID})
	notify(listeners, state)
}

func (s *CartStore) setOpen(open bool) {
	s.mu.Lock()
	if s.state.IsOpen == open {
		s.mu.Unlock()
		return
	}
	s.state.IsOpen = open
	state, listeners := s.state.Clone(), s.listenersLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	notify(listeners, state)
}

// observe must be called with s.mu held.
func (s *CartStore) observe() {
	total, _ := s.state.Total().Float64()
	s.metrics.ObserveCart(total, s.state.ItemCount())
}

func (s *CartStore) listenersLocked() []func(domain.CartState) {
	out := make([]func(domain.CartState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify[T any](listeners []func(T), state T) {
	for _, fn := range listeners {
		fn(state)
	}
}
