package store

import (
	"context"
	"sync"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/telemetry"
)

// WishlistStore keeps the set of favourite products. The backend exposes a
// single symmetric toggle endpoint, so the store only calls it when the
// local membership actually changes.
type WishlistStore struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     domain.WishlistState
	listeners map[int]func(domain.WishlistState)
	nextID    int

	api      WishlistAPI
	mirror   mirror
	snapshot snapshot
	metrics  *telemetry.ClientMetrics
}

type wishlistSnapshot struct {
	Items []domain.Product `json:"items"`
}

// NewWishlistStore creates a wishlist and restores the persisted products.
func NewWishlistStore(ctx context.Context, api WishlistAPI, sess Session, store storage.Storage, opts ...Option) *WishlistStore {
	o := buildOptions(opts)
	logger := o.logger.With("component", "wishlist")

	s := &WishlistStore{
		api:       api,
		listeners: make(map[int]func(domain.WishlistState)),
		mirror:    mirror{name: "wishlist", session: sess, logger: logger, metrics: o.metrics},
		snapshot:  snapshot{key: WishlistStorageKey, storage: store, logger: logger, metrics: o.metrics},
		metrics:   o.metrics,
	}

	var snap wishlistSnapshot
	s.snapshot.load(ctx, &snap)
	s.state.Items = domain.RemoteWishlist{Items: wrap(snap.Items)}.Products()
	s.metrics.ObserveWishlist(len(s.state.Items))

	return s
}

func (s *WishlistStore) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Contains(productID)
}

// AddItem adds product unless it is already present. The toggle request is
// only sent when the product was absent.
func (s *WishlistStore) AddItem(ctx context.Context, product domain.Product) {
	op := s.apply(ctx, product.ID, func(st *domain.WishlistState) string {
		if st.Contains(product.ID) {
			return ""
		}
		addProduct(st, product)
		return "add"
	})
	s.mirrorToggle(ctx, op, product.ID)
}

// RemoveItem drops productID. The toggle request is only sent when the
// product was present, so removing an absent product never adds it on the
// server.
func (s *WishlistStore) RemoveItem(ctx context.Context, productID string) {
	op := s.apply(ctx, productID, func(st *domain.WishlistState) string {
		if !removeProduct(st, productID) {
			return ""
		}
		return "remove"
	})
	s.mirrorToggle(ctx, op, productID)
}

// ToggleItem adds product when absent and removes it when present. The
// membership check and the mutation happen under one lock.
func (s *WishlistStore) ToggleItem(ctx context.Context, product domain.Product) {
	op := s.apply(ctx, product.ID, func(st *domain.WishlistState) string {
		if removeProduct(st, product.ID) {
			return "remove"
		}
		addProduct(st, product)
		return "add"
	})
	s.mirrorToggle(ctx, op, product.ID)
}

func (s *WishlistStore) mirrorToggle(ctx context.Context, op, productID string) {
	if op == "" {
		return
	}
	s.mirror.call(ctx, op, productID, func(ctx context.Context) error {
		return s.api.ToggleWishlist(ctx, productID)
	})
}

func addProduct(st *domain.WishlistState, product domain.Product) {
	st.Items = append(st.Items, product.Clone())
}

// removeProduct reports whether productID was present.
func removeProduct(st *domain.WishlistState, productID string) bool {
	if !st.Contains(productID) {
		return false
	}
	kept := st.Items[:0]
	for _, p := range st.Items {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	st.Items = kept
	return true
}

// SyncWithBackend replaces local state with the server wishlist. Without a
// session, or when the fetch fails, local state is left as it was.
func (s *WishlistStore) SyncWithBackend(ctx context.Context) {
	var remote domain.RemoteWishlist
	fetched := false

	s.mirror.call(ctx, "sync", "", func(ctx context.Context) error {
		var err error
		remote, err = s.api.GetWishlist(ctx)
		fetched = err == nil
		return err
	})
	if !fetched {
		return
	}

	s.apply(ctx, "", func(st *domain.WishlistState) string {
		st.Items = domain.WishlistState{Items: remote.Products()}.Clone().Items
		return "sync"
	})
}

// State returns a deep copy of the wishlist.
func (s *WishlistStore) State() domain.WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *WishlistStore) Items() []domain.Product {
	return s.State().Items
}

// Subscribe registers fn to receive a copy of the state after every change.
// Calls are serialized and arrive in mutation order; fn must not mutate the
// wishlist synchronously.
func (s *WishlistStore) Subscribe(fn func(domain.WishlistState)) (unsubscribe func()) {
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

// apply runs fn under the lock. fn returns the operation it performed, or
// "" when nothing changed. On change the new state is persisted and
// listeners are notified in mutation order.
func (s *WishlistStore) apply(ctx context.Context, productID string, fn func(*domain.WishlistState) string) string {
	s.mu.Lock()
	op := fn(&s.state)
	if op == "" {
		s.mu.Unlock()
		return ""
	}
	if s.state.Items == nil {
		s.state.Items = []domain.Product{}
	}
	s.snapshot.save(ctx, wishlistSnapshot{Items: s.state.Items})
	s.metrics.ObserveWishlist(len(s.state.Items))

	state := s.state.Clone()
	listeners := make([]func(domain.WishlistState), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.notifyMu.Lock()
	s.mu.Unlock()

	s.metrics.WishlistOp(op)
	telemetry.AddBreadcrumb("wishlist", op, map[string]interface{}{"product_id": productID})
	notify(listeners, state)
	s.notifyMu.Unlock()
	return op
}

func wrap(products []domain.Product) []domain.RemoteWishlistItem {
	out := make([]domain.RemoteWishlistItem, len(products))
	for i, p := range products {
		out[i] = domain.RemoteWishlistItem{Product: p}
	}
	return out
}
