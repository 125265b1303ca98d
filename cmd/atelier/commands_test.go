package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/mockapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*mockapi.Backend, string) {
	t.Helper()
	b := mockapi.NewBackend()
	b.Seed()

	srv := mockapi.New(b, mockapi.WithLogger(internal.NopLogger()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return b, ts.URL
}

func newTestApp(t *testing.T, url string) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := &internal.Config{
		Env:      "dev",
		LogLevel: "error",
		API:      internal.APIConfig{BaseURL: url + "/api", Timeout: 2 * time.Second},
		Storage:  internal.StorageConfig{Provider: "memory"},
		Metrics:  internal.MetricsConfig{Namespace: "cli_test"},
	}
	out := &bytes.Buffer{}
	a, err := newApp(context.Background(), cfg, internal.NopLogger(), out)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, out
}

func exec(t *testing.T, a *app, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, a.dispatch(context.Background(), args))
	return out.String()
}

func TestDispatch_Usage(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	err := a.dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out.String(), "usage: atelier")

	err = a.dispatch(context.Background(), []string{"teleport"})
	assert.ErrorIs(t, err, errUsage)

	err = a.dispatch(context.Background(), []string{"cart", "update", "p-mug"})
	assert.ErrorIs(t, err, errUsage)
}

func TestDispatch_LoginAndWhoami(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	assert.Equal(t, "guest\n", exec(t, a, out, "whoami"))

	exec(t, a, out, "login", "--token", mockapi.Token("user", "u1"), "--email", "ada@example.com")
	assert.Equal(t, "u1 <ada@example.com> (user)\n", exec(t, a, out, "whoami"))

	exec(t, a, out, "logout")
	assert.Equal(t, "guest\n", exec(t, a, out, "whoami"))
}

func TestDispatch_Catalog(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	got := exec(t, a, out, "products", "--category", "cat-ceramics")
	assert.Contains(t, got, "p-mug")
	assert.Contains(t, got, "p-bowl")
	assert.NotContains(t, got, "p-stool")

	got = exec(t, a, out, "product", "p-napkins")
	assert.Contains(t, got, "80.00 (50 or more)")

	err := a.dispatch(context.Background(), []string{"product", "p-missing"})
	assert.True(t, domain.IsCode(err, domain.ENOTFOUND))
}

func TestDispatch_GuestCartStaysLocal(t *testing.T) {
	b, url := newBackend(t)
	a, out := newTestApp(t, url)

	got := exec(t, a, out, "cart", "add", "p-mug", "3")
	assert.Contains(t, got, "72.00")
	assert.Empty(t, b.Cart("u1").Items)

	got = exec(t, a, out, "cart", "update", "p-mug", "0")
	assert.Equal(t, "cart is empty\n", got)
}

func TestDispatch_CartAndCheckout(t *testing.T) {
	b, url := newBackend(t)
	a, out := newTestApp(t, url)

	exec(t, a, out, "login", "--token", mockapi.Token("user", "u1"))
	exec(t, a, out, "cart", "add", "p-mug", "2")
	require.Len(t, b.Cart("u1").Items, 1)

	got := exec(t, a, out, "checkout",
		"--name", "Ada Lovelace", "--line1", "12 St James's Square", "--city", "London",
		"--state", "LDN", "--postal", "SW1Y 4JH", "--country", "GB", "--phone", "02079460000")
	assert.Contains(t, got, "48.00")
	assert.Equal(t, 0, a.cart.ItemCount())

	orders := b.MyOrders("u1")
	require.Len(t, orders, 1)
	assert.Contains(t, exec(t, a, out, "orders"), orders[0].ID)
}

func TestDispatch_CheckoutValidation(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	exec(t, a, out, "login", "--token", mockapi.Token("user", "u1"))
	exec(t, a, out, "cart", "add", "p-mug")

	err := a.dispatch(context.Background(), []string{"checkout", "--name", "Ada"})
	assert.True(t, domain.IsValidationError(err))
	assert.Equal(t, 1, a.cart.ItemCount())
}

func TestDispatch_Wishlist(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	exec(t, a, out, "login", "--token", mockapi.Token("user", "u1"))
	assert.Contains(t, exec(t, a, out, "wishlist", "add", "p-bowl"), "p-bowl")
	assert.Contains(t, exec(t, a, out, "wishlist", "add", "p-bowl"), "p-bowl")
	assert.Equal(t, "wishlist is empty\n", exec(t, a, out, "wishlist", "toggle", "p-bowl"))
}

func TestDispatch_WishlistRemoveAbsent(t *testing.T) {
	b, url := newBackend(t)
	a, out := newTestApp(t, url)

	exec(t, a, out, "login", "--token", mockapi.Token("user", "u1"))

	got := exec(t, a, out, "wishlist", "remove", "p-bowl")
	assert.Contains(t, got, "p-bowl is not in the wishlist")
	assert.Empty(t, b.Wishlist("u1").Items)

	// The store itself also refuses to toggle an absent product.
	a.wishlist.RemoveItem(context.Background(), "p-mug")
	assert.Empty(t, b.Wishlist("u1").Items)
	assert.False(t, a.wishlist.IsInWishlist("p-mug"))
}

func TestDispatch_CustomOrderLifecycle(t *testing.T) {
	b, url := newBackend(t)
	user, userOut := newTestApp(t, url)
	admin, adminOut := newTestApp(t, url)

	exec(t, user, userOut, "login", "--token", mockapi.Token("user", "u1"))
	exec(t, admin, adminOut, "login", "--token", mockapi.Token("admin", "a1"), "--role", "admin")

	got := exec(t, user, userOut, "custom-order", "create",
		"--item", "Walnut desk", "--description", "Standing height", "--quantity", "2", "--budget", "900")
	assert.Contains(t, got, "REQUESTED")

	mine := b.MyCustomOrders("u1")
	require.Len(t, mine, 1)
	id := mine[0].ID

	assert.Contains(t, exec(t, admin, adminOut, "admin", "list", "--status", "requested"), id)

	got = exec(t, admin, adminOut, "admin", "approve", id, "--price", "800", "--note", "oiled finish")
	assert.Contains(t, got, "APPROVED")
	assert.Contains(t, got, "800.00")

	assert.Regexp(t, `Actions\s+pay\n`, exec(t, user, userOut, "custom-order", "get", id))

	got = exec(t, user, userOut, "custom-order", "pay", id)
	assert.Contains(t, got, "PAID")

	got = exec(t, admin, adminOut, "admin", "status", id, "SHIPPED")
	assert.Contains(t, got, "SHIPPED")
	assert.Contains(t, got, "oiled finish")

	err := admin.dispatch(context.Background(), []string{"admin", "reject", id})
	assert.True(t, domain.IsCode(err, domain.ECONFLICT))

	err = user.dispatch(context.Background(), []string{"admin", "list"})
	assert.True(t, domain.IsCode(err, domain.EFORBIDDEN))
}

func TestPushMetrics(t *testing.T) {
	_, url := newBackend(t)
	a, out := newTestApp(t, url)

	var method, path string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	a.cfg.Metrics.Enabled = true
	a.cfg.Metrics.PushURL = gateway.URL

	exec(t, a, out, "cart", "add", "p-mug")
	require.NoError(t, a.pushMetrics(context.Background()))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/"+pushJob, path)
}
