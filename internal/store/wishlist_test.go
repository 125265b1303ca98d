package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newWishlist(t *testing.T, api WishlistAPI, sess Session, store storage.Storage) *WishlistStore {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStorage()
	}
	return NewWishlistStore(context.Background(), api, sess, store, WithLogger(internal.NopLogger()))
}

func TestWishlistStore_AddIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	// Only the first add reaches the backend: the toggle is not idempotent.
	api.EXPECT().ToggleWishlist(gomock.Any(), "vase").Return(nil).Times(1)

	w := newWishlist(t, api, signedIn, nil)
	w.AddItem(ctx, product("vase", 40))
	w.AddItem(ctx, product("vase", 40))

	assert.Len(t, w.Items(), 1)
	assert.True(t, w.IsInWishlist("vase"))
}

func TestWishlistStore_ToggleSymmetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	api.EXPECT().ToggleWishlist(gomock.Any(), "vase").Return(nil).Times(2)

	w := newWishlist(t, api, signedIn, nil)
	before := w.State()

	w.ToggleItem(ctx, product("vase", 40))
	assert.True(t, w.IsInWishlist("vase"))

	w.ToggleItem(ctx, product("vase", 40))
	assert.False(t, w.IsInWishlist("vase"))
	assert.Equal(t, len(before.Items), len(w.Items()))
}

func TestWishlistStore_RemoveCallsToggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().ToggleWishlist(gomock.Any(), "vase").Return(nil),
		api.EXPECT().ToggleWishlist(gomock.Any(), "vase").Return(nil),
	)

	w := newWishlist(t, api, signedIn, nil)
	w.AddItem(ctx, product("vase", 40))
	w.RemoveItem(ctx, "vase")

	assert.Empty(t, w.Items())
}

func TestWishlistStore_RemoveAbsentMakesNoRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)

	// No ToggleWishlist expectation: a toggle here would add "vase" on the server.
	w := newWishlist(t, api, signedIn, nil)

	calls := 0
	w.Subscribe(func(domain.WishlistState) { calls++ })
	w.RemoveItem(context.Background(), "vase")

	assert.Empty(t, w.Items())
	assert.Zero(t, calls)
}

func TestWishlistStore_ConcurrentTogglesStayPaired(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	const toggles = 100
	var mu sync.Mutex
	serverHas := false
	api.EXPECT().ToggleWishlist(gomock.Any(), "vase").DoAndReturn(func(context.Context, string) error {
		mu.Lock()
		defer mu.Unlock()
		serverHas = !serverHas
		return nil
	}).Times(toggles + 1)

	w := newWishlist(t, api, signedIn, nil)
	w.AddItem(ctx, product("vase", 40))

	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.ToggleItem(ctx, product("vase", 40))
		}()
	}
	wg.Wait()

	// An even number of toggles on a present product leaves it present,
	// locally and on the server.
	assert.True(t, w.IsInWishlist("vase"))
	assert.True(t, serverHas)
	assert.Len(t, w.Items(), 1)
}

func TestWishlistStore_GuestModeMakesNoRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	w := newWishlist(t, api, signedOut, nil)
	w.ToggleItem(ctx, product("a", 1))
	w.ToggleItem(ctx, product("b", 1))
	w.ToggleItem(ctx, product("a", 1))
	w.SyncWithBackend(ctx)

	items := w.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestWishlistStore_FailureDoesNotRollBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)

	api.EXPECT().ToggleWishlist(gomock.Any(), "vase").Return(errors.New("connection reset"))

	w := newWishlist(t, api, signedIn, nil)
	w.AddItem(context.Background(), product("vase", 40))

	assert.True(t, w.IsInWishlist("vase"))
}

func TestWishlistStore_SyncOverwrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	newWishlist(t, nil, signedOut, store).AddItem(ctx, product("local", 1))

	api.EXPECT().GetWishlist(gomock.Any()).Return(domain.RemoteWishlist{Items: []domain.RemoteWishlistItem{
		{Product: product("r1", 1)},
		{Product: product("r2", 1)},
		{Product: product("r1", 1)},
	}}, nil)

	w := newWishlist(t, api, signedIn, store)
	w.SyncWithBackend(ctx)

	assert.False(t, w.IsInWishlist("local"))
	assert.True(t, w.IsInWishlist("r1"))
	assert.True(t, w.IsInWishlist("r2"))
	assert.Len(t, w.Items(), 2)
}

func TestWishlistStore_SyncFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockWishlistAPI(ctrl)
	ctx := context.Background()

	api.EXPECT().ToggleWishlist(gomock.Any(), "a").Return(nil)
	api.EXPECT().GetWishlist(gomock.Any()).Return(domain.RemoteWishlist{}, errors.New("502"))

	w := newWishlist(t, api, signedIn, nil)
	w.AddItem(ctx, product("a", 1))
	w.SyncWithBackend(ctx)

	assert.True(t, w.IsInWishlist("a"))
}

func TestWishlistStore_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	w := newWishlist(t, nil, signedOut, store)
	w.AddItem(ctx, product("a", 1))
	w.AddItem(ctx, product("b", 2))
	w.RemoveItem(ctx, "a")

	reloaded := newWishlist(t, nil, signedOut, store)
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestWishlistStore_SubscribeSkipsNoOps(t *testing.T) {
	ctx := context.Background()
	w := newWishlist(t, nil, signedOut, nil)

	calls := 0
	w.Subscribe(func(domain.WishlistState) { calls++ })

	w.AddItem(ctx, product("a", 1))
	w.AddItem(ctx, product("a", 1))

	assert.Equal(t, 1, calls)
}
