package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped" // no session, so the remote call was never made
	OutcomeRejected = "rejected"
)

// ClientMetrics holds Prometheus metrics for the storefront client.
// All methods are safe on a nil receiver so components can run unmetered.
type ClientMetrics struct {
	// Local stores
	CartOperations     *prometheus.CounterVec
	WishlistOperations *prometheus.CounterVec
	CartValue          prometheus.Gauge
	CartItems          prometheus.Gauge
	WishlistItems      prometheus.Gauge
	PersistFailures    *prometheus.CounterVec

	// Best-effort remote mirroring
	RemoteSync *prometheus.CounterVec

	// Backend calls
	APIRequests *prometheus.HistogramVec
	APIErrors   *prometheus.CounterVec

	// Workflow & checkout
	CustomOrderActions *prometheus.CounterVec
	CheckoutsCompleted prometheus.Counter
}

// NewClientMetrics creates all client metrics and registers them with reg.
// Passing a fresh prometheus.NewRegistry() keeps tests isolated.
func NewClientMetrics(namespace string, reg prometheus.Registerer) *ClientMetrics {
	if namespace == "" {
		namespace = "atelier"
	}
	factory := promauto.With(reg)

	return &ClientMetrics{
		// =======================================================================
		// Local Stores
		// =======================================================================
		CartOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "operations_total",
				Help:      "Cart mutations applied locally",
			},
			[]string{"operation"}, // operation: add, remove, update, clear, sync
		),
		WishlistOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wishlist",
				Name:      "operations_total",
				Help:      "Wishlist mutations applied locally",
			},
			[]string{"operation"}, // operation: add, remove, toggle, sync
		),
		CartValue: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "value",
				Help:      "Current cart total with bulk pricing applied",
			},
		),
		CartItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "items",
				Help:      "Current sum of cart quantities",
			},
		),
		WishlistItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "wishlist",
				Name:      "items",
				Help:      "Current number of wishlisted products",
			},
		),
		PersistFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "storage",
				Name:      "persist_failures_total",
				Help:      "Snapshots that could not be written to durable storage",
			},
			[]string{"key"},
		),

		// =======================================================================
		// Remote Mirroring
		// =======================================================================
		RemoteSync: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "remote",
				Name:      "calls_total",
				Help:      "Best-effort backend calls made by the cart and wishlist stores",
			},
			[]string{"store", "operation", "outcome"},
		),

		// =======================================================================
		// Backend API
		// =======================================================================
		APIRequests: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Backend request duration",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "status"},
		),
		APIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "errors_total",
				Help:      "Backend calls that failed, by domain error code",
			},
			[]string{"code"},
		),

		// =======================================================================
		// Custom Orders & Checkout
		// =======================================================================
		CustomOrderActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "custom_order",
				Name:      "actions_total",
				Help:      "Custom order workflow calls",
			},
			[]string{"action", "outcome"}, // action: submit, quote, approve, reject, update-status
		),
		CheckoutsCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "checkout",
				Name:      "completed_total",
				Help:      "Orders placed from the cart",
			},
		),
	}
}

func (m *ClientMetrics) CartOp(operation string) {
	if m == nil {
		return
	}
	m.CartOperations.WithLabelValues(operation).Inc()
}

func (m *ClientMetrics) WishlistOp(operation string) {
	if m == nil {
		return
	}
	m.WishlistOperations.WithLabelValues(operation).Inc()
}

// ObserveCart records the derived cart figures after a mutation.
func (m *ClientMetrics) ObserveCart(total float64, items int) {
	if m == nil {
		return
	}
	m.CartValue.Set(total)
	m.CartItems.Set(float64(items))
}

func (m *ClientMetrics) ObserveWishlist(items int) {
	if m == nil {
		return
	}
	m.WishlistItems.Set(float64(items))
}

func (m *ClientMetrics) PersistFailed(key string) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(key).Inc()
}

func (m *ClientMetrics) Remote(store, operation, outcome string) {
	if m == nil {
		return
	}
	m.RemoteSync.WithLabelValues(store, operation, outcome).Inc()
}

func (m *ClientMetrics) ObserveAPI(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(method, status).Observe(seconds)
}

func (m *ClientMetrics) APIError(code string) {
	if m == nil {
		return
	}
	m.APIErrors.WithLabelValues(code).Inc()
}

func (m *ClientMetrics) CustomOrderAction(action, outcome string) {
	if m == nil {
		return
	}
	m.CustomOrderActions.WithLabelValues(action, outcome).Inc()
}

func (m *ClientMetrics) CheckoutCompleted() {
	if m == nil {
		return
	}
	m.CheckoutsCompleted.Inc()
}
