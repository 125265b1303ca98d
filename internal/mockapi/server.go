package mockapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/atelier/internal/middleware"
	"github.com/dukerupert/atelier/internal/router"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

// Server exposes a Backend over HTTP under /api.
type Server struct {
	backend *Backend
	logger  *slog.Logger
	metrics *middleware.Metrics
	limiter *middleware.RateLimiter
	origins []string
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records HTTP metrics on reg.
func WithMetrics(namespace string, reg prometheus.Registerer) Option {
	return func(s *Server) { s.metrics = middleware.NewMetrics(namespace, reg) }
}

// WithRateLimit throttles each user (or anonymous client IP) to rps with
// the given burst. Throttled calls get 429.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		cfg := middleware.DefaultRateLimiterConfig()
		cfg.RequestsPerSecond = rps
		cfg.BurstSize = burst
		s.limiter = middleware.NewRateLimiter(cfg)
	}
}

// WithCORS allows browser clients from origins.
func WithCORS(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

func New(backend *Backend, opts ...Option) *Server {
	s := &Server{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the rate limiter's cleanup loop.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Handler builds the routing tree.
func (s *Server) Handler() http.Handler {
	chain := []router.Middleware{
		middleware.RequestID,
		router.Recovery(s.logger),
		router.Logger(s.logger),
		telemetry.SentryMiddleware(),
	}
	if len(s.origins) > 0 {
		chain = append(chain, router.CORS(s.origins))
	}
	if s.metrics != nil {
		chain = append(chain, s.metrics.Middleware)
	}
	chain = append(chain,
		middleware.WithUser(Tokens{}),
		middleware.WithRequestLogger(s.logger),
		telemetry.SentryContextMiddleware(sentryUser),
		middleware.MaxBodySize(),
	)
	if s.limiter != nil {
		chain = append(chain, s.limiter.Middleware)
	}

	r := router.New(chain...)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := r.Route("/api")

	// Catalog is public.
	api.Get("/products", s.listProducts)
	api.Get("/products/{id}", s.getProduct)
	api.Get("/categories", s.listCategories)

	user := api.Group(middleware.RequireAuth)
	user.Get("/cart", s.getCart)
	user.Post("/cart/items", s.addCartItem)
	user.Put("/cart/items/{productId}", s.updateCartItem)
	user.Delete("/cart/items/{productId}", s.removeCartItem)

	user.Get("/wishlist", s.getWishlist)
	user.Post("/wishlist/toggle/{productId}", s.toggleWishlist)

	user.Post("/custom-orders", s.createCustomOrder)
	user.Get("/custom-orders/my", s.listMyCustomOrders)
	user.Get("/custom-orders/{id}", s.getCustomOrder)
	user.Post("/custom-orders/{id}/pay", s.payCustomOrder)

	user.Post("/orders", s.placeOrder)
	user.Get("/orders/my", s.listMyOrders)
	user.Get("/orders/{id}", s.getOrder)

	admin := api.Group(middleware.RequireAdmin)
	admin.Get("/custom-orders/admin/all", s.listAllCustomOrders)
	admin.Put("/custom-orders/admin/{id}/approve", s.approveCustomOrder)
	admin.Put("/custom-orders/admin/{id}/quote", s.quoteCustomOrder)
	admin.Put("/custom-orders/admin/{id}/reject", s.rejectCustomOrder)
	admin.Put("/custom-orders/admin/{id}/status", s.updateCustomOrderStatus)

	return r
}

func sentryUser(ctx context.Context) *telemetry.UserInfo {
	u := middleware.GetUserFromContext(ctx)
	if u == nil {
		return nil
	}
	return &telemetry.UserInfo{ID: u.ID, Email: u.Email, Role: u.Role}
}

// currentUser is only called behind RequireAuth or RequireAdmin.
func currentUser(r *http.Request) *middleware.User {
	return middleware.GetUserFromContext(r.Context())
}
