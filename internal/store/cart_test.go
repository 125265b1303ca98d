package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeSession implements Session for testing
type fakeSession struct {
	active bool
}

func (f fakeSession) Active() bool { return f.active }

var (
	signedIn  = fakeSession{active: true}
	signedOut = fakeSession{active: false}
)

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, SellingPrice: decimal.NewFromInt(price)}
}

func napkins() domain.Product {
	return domain.Product{
		ID:              "napkins",
		Name:            "Linen napkins",
		SellingPrice:    decimal.NewFromInt(100),
		BulkPrice:       decimal.NewNullDecimal(decimal.NewFromInt(80)),
		BulkMinQuantity: 50,
	}
}

func newCart(t *testing.T, api CartAPI, sess Session, store storage.Storage, opts ...Option) *CartStore {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStorage()
	}
	opts = append([]Option{WithLogger(internal.NopLogger())}, opts...)
	return NewCartStore(context.Background(), api, sess, store, opts...)
}

func TestCartStore_AddItemMergesQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().AddCartItem(gomock.Any(), "mug", 2).Return(nil),
		api.EXPECT().AddCartItem(gomock.Any(), "mug", 3).Return(nil),
	)

	cart := newCart(t, api, signedIn, nil)
	cart.AddItem(ctx, product("mug", 12), 2)
	cart.AddItem(ctx, product("mug", 12), 3)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "mug", items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, cart.IsOpen(), "adding opens the cart")
}

func TestCartStore_AddItemClampsQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	api.EXPECT().AddCartItem(gomock.Any(), "mug", 1).Return(nil)

	cart := newCart(t, api, signedIn, nil)
	cart.AddItem(context.Background(), product("mug", 12), 0)

	assert.Equal(t, 1, cart.ItemCount())
}

func TestCartStore_GuestModeMakesNoRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl) // no expectations: any call fails the test
	ctx := context.Background()

	cart := newCart(t, api, signedOut, nil)
	cart.AddItem(ctx, product("mug", 12), 1)
	cart.AddItem(ctx, product("tee", 20), 2)
	cart.UpdateQuantity(ctx, "tee", 4)
	cart.RemoveItem(ctx, "mug")
	cart.SyncWithBackend(ctx)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "tee", items[0].Product.ID)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestCartStore_NonPositiveQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		t.Run(fmt.Sprintf("quantity %d", qty), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := NewMockCartAPI(ctrl)
			ctx := context.Background()

			api.EXPECT().AddCartItem(gomock.Any(), "mug", 1).Return(nil)
			api.EXPECT().RemoveCartItem(gomock.Any(), "mug").Return(nil)

			cart := newCart(t, api, signedIn, nil)
			cart.AddItem(ctx, product("mug", 12), 1)
			cart.UpdateQuantity(ctx, "mug", qty)

			assert.Empty(t, cart.Items())
			assert.Equal(t, 0, cart.ItemCount())
		})
	}
}

func TestCartStore_BulkPriceThreshold(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, nil, signedOut, nil)

	cart.AddItem(ctx, napkins(), 49)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(4900)), "got %s", cart.Total())

	cart.UpdateQuantity(ctx, "napkins", 50)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(4000)), "got %s", cart.Total())

	cart.AddItem(ctx, napkins(), 1)
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(4080)), "got %s", cart.Total())
}

func TestCartStore_FailureDoesNotRollBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()
	metrics := telemetry.NewClientMetrics("test", prometheus.NewRegistry())

	api.EXPECT().AddCartItem(gomock.Any(), "mug", 1).Return(errors.New("connection refused"))
	api.EXPECT().UpdateCartItem(gomock.Any(), "mug", 3).Return(domain.Errorf(domain.EINTERNAL, "cart.update", "boom"))
	api.EXPECT().RemoveCartItem(gomock.Any(), "tee").Return(errors.New("timeout"))

	cart := newCart(t, api, signedIn, nil, WithMetrics(metrics))
	cart.AddItem(ctx, product("mug", 12), 1)
	cart.UpdateQuantity(ctx, "mug", 3)
	cart.RemoveItem(ctx, "tee")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RemoteSync.WithLabelValues("cart", "add", telemetry.OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RemoteSync.WithLabelValues("cart", "remove", telemetry.OutcomeFailed)))
}

func TestCartStore_UpdateUnknownProductStillCallsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	api.EXPECT().UpdateCartItem(gomock.Any(), "ghost", 2).Return(nil)

	cart := newCart(t, api, signedIn, nil)
	cart.UpdateQuantity(context.Background(), "ghost", 2)

	assert.Empty(t, cart.Items())
}

func TestCartStore_SyncOverwritesLocalItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	// Local-only item added while signed out.
	guest := newCart(t, api, signedOut, store)
	guest.AddItem(ctx, product("A", 10), 2)

	api.EXPECT().GetCart(gomock.Any()).Return(domain.RemoteCart{Items: []domain.CartItem{
		{ID: "ci-9", Product: product("B", 5), Quantity: 1},
	}}, nil)

	cart := newCart(t, api, signedIn, store)
	cart.SyncWithBackend(ctx)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Product.ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "ci-9", items[0].ID)

	raw, err := store.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"id":"A"`)
}

func TestCartStore_SyncFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()

	api.EXPECT().AddCartItem(gomock.Any(), "A", 2).Return(nil)
	api.EXPECT().GetCart(gomock.Any()).Return(domain.RemoteCart{}, errors.New("503"))

	cart := newCart(t, api, signedIn, nil)
	cart.AddItem(ctx, product("A", 10), 2)
	cart.SyncWithBackend(ctx)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartStore_SyncEmptyRemoteClearsCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()

	api.EXPECT().GetCart(gomock.Any()).Return(domain.RemoteCart{}, nil)

	store := storage.NewMemoryStorage()
	newCart(t, nil, signedOut, store).AddItem(ctx, product("A", 10), 1)

	cart := newCart(t, api, signedIn, store)
	cart.SyncWithBackend(ctx)
	assert.Empty(t, cart.Items())
}

func TestCartStore_PersistsOnlyItems(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	cart := newCart(t, nil, signedOut, store)
	cart.AddItem(ctx, napkins(), 3)
	require.True(t, cart.IsOpen())

	raw, err := store.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"product":{"id":"napkins","name":"Linen napkins","description":"","mrp":0,"sellingPrice":100,"bulkPrice":80,"bulkMinQuantity":50,"stockQuantity":0,"images":null}, "quantity":3}]}`, string(raw))

	reloaded := newCart(t, nil, signedOut, store)
	assert.False(t, reloaded.IsOpen(), "visibility is not persisted")
	assert.Equal(t, 3, reloaded.ItemCount())
	assert.True(t, reloaded.Total().Equal(decimal.NewFromInt(300)))
}

func TestCartStore_CorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Put(ctx, CartStorageKey, []byte("{not json")))

	cart := newCart(t, nil, signedOut, store)
	assert.Empty(t, cart.Items())
}

func TestCartStore_ClearCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := NewMockCartAPI(ctrl)
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	api.EXPECT().AddCartItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	cart := newCart(t, api, signedIn, store)
	cart.AddItem(ctx, product("A", 10), 1)
	cart.AddItem(ctx, product("B", 10), 1)
	cart.ClearCart(ctx)

	assert.Empty(t, cart.Items())
	assert.True(t, cart.Total().IsZero())

	raw, err := store.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestCartStore_OpenClose(t *testing.T) {
	cart := newCart(t, nil, signedOut, nil)

	assert.False(t, cart.IsOpen())
	cart.OpenCart()
	assert.True(t, cart.IsOpen())
	cart.CloseCart()
	assert.False(t, cart.IsOpen())
}

func TestCartStore_StateIsACopy(t *testing.T) {
	cart := newCart(t, nil, signedOut, nil)
	cart.AddItem(context.Background(), product("A", 10), 1)

	st := cart.State()
	st.Items[0].Quantity = 99

	assert.Equal(t, 1, cart.ItemCount())
}

func TestCartStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, nil, signedOut, nil)

	var seen []int
	unsubscribe := cart.Subscribe(func(st domain.CartState) {
		seen = append(seen, st.ItemCount())
	})

	cart.AddItem(ctx, product("A", 10), 2)
	cart.AddItem(ctx, product("A", 10), 1)
	unsubscribe()
	cart.AddItem(ctx, product("A", 10), 1)

	assert.Equal(t, []int{2, 3}, seen)
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, nil, signedOut, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddItem(ctx, product("A", 10), 1)
		}()
	}
	wg.Wait()

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 50, cart.ItemCount())
}

func TestCartStore_SubscribersSeeMutationOrder(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t, nil, signedOut, nil)

	var seen []int
	cart.Subscribe(func(st domain.CartState) {
		seen = append(seen, st.ItemCount())
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddItem(ctx, product("A", 10), 1)
		}()
	}
	wg.Wait()

	require.Len(t, seen, 50)
	for i, count := range seen {
		assert.Equal(t, i+1, count, "notification %d delivered out of order", i)
	}
}
