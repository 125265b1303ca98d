package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/atelier/internal"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSentry_Disabled(t *testing.T) {
	cleanup, err := InitSentry(SentryConfig{Enabled: false}, internal.NopLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		CaptureError(errors.New("boom"), map[string]interface{}{"op": "cart.add"})
		AddBreadcrumb("cart", "add", nil)
		SetUser("u1", "u1@example.com")
	})
}

func TestInitSentry_MissingDSN(t *testing.T) {
	cleanup, err := InitSentry(SentryConfig{Enabled: true}, internal.NopLogger())
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, IsEnabled())
}

func TestHTTPTransport_PassThroughWhenDisabled(t *testing.T) {
	_, _ = InitSentry(SentryConfig{}, internal.NopLogger())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &HTTPTransport{}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestScrub_DropsCredentials(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{Headers: map[string]string{
		"Authorization": "Bearer user:u1",
		"Cookie":        "sid=1",
		"X-Request-ID":  "req-1",
	}}}

	got := scrub(event, nil)
	assert.Equal(t, map[string]string{"X-Request-ID": "req-1"}, got.Request.Headers)
	assert.NotNil(t, scrub(&sentry.Event{}, nil))
}
