// Package apiclient is the REST client for the storefront backend. Every
// call is a single request: no caching, no client-side retries beyond the
// configured transport retry count.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestIDHeader carries a per-request correlation id to the backend.
const RequestIDHeader = "X-Request-ID"

// TokenSource yields the bearer credential of the active session, or ""
// when nobody is signed in. Requests without a token are sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the storefront REST API.
type Client struct {
	http    *resty.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

type options struct {
	logger    *slog.Logger
	metrics   *telemetry.ClientMetrics
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTransport replaces the innermost round tripper (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a Client for cfg.BaseURL. tokens may be nil.
func New(cfg internal.APIConfig, tokens TokenSource, opts ...Option) *Client {
	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	logger := o.logger.With("component", "apiclient")

	// Transport chain: sentry span -> otel span -> base transport.
	rt := o.transport
	if cfg.Tracing {
		rt = otelhttp.NewTransport(rt)
	}
	rt = &telemetry.HTTPTransport{Transport: rt}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		http: resty.New().
			SetTransport(rt).
			SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
			SetTimeout(timeout).
			SetRetryCount(cfg.RetryCount).
			SetHeader("Accept", "application/json"),
		tokens:  tokens,
		logger:  logger,
		metrics: o.metrics,
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(RequestIDHeader) == "" {
			r.SetHeader(RequestIDHeader, uuid.New().String())
		}
		if c.tokens != nil {
			if token := c.tokens.Token(); token != "" {
				r.SetAuthToken(token)
			}
		}
		return nil
	})

	if cfg.Breaker {
		c.breaker = newBreaker(logger)
	}

	return c
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "storefront-api",
		MaxRequests: 3,                // Max requests allowed in half-open state
		Interval:    15 * time.Second, // Window to track failures
		Timeout:     30 * time.Second, // Time to wait before half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"circuit", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	query  map[string]string
	body   interface{}
	out    interface{}
}

// errServer marks a 5xx response so the breaker counts it as a failure.
// 4xx responses are the caller's fault and leave the breaker alone.
var errServer = errors.New("server error")

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, cl call) error {
	req := c.http.R().SetContext(ctx)
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}

	var resp *resty.Response
	run := func() (interface{}, error) {
		r, err := req.Execute(cl.method, cl.path)
		resp = r
		if err != nil {
			return nil, err
		}
		if r.StatusCode() >= http.StatusInternalServerError {
			return nil, errServer
		}
		return nil, nil
	}

	var err error
	if c.breaker != nil {
		_, err = c.breaker.Execute(run)
	} else {
		_, err = run()
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return c.fail(cl, domain.WrapError(err, domain.EUNAVAILABLE, cl.op, "backend temporarily unavailable"))
	case err != nil && !errors.Is(err, errServer):
		return c.fail(cl, domain.WrapError(err, domain.EUNAVAILABLE, cl.op, "backend unreachable"))
	}

	c.metrics.ObserveAPI(cl.method, strconv.Itoa(resp.StatusCode()), resp.Time().Seconds())
	c.logger.Debug("api call",
		"op", cl.op,
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if resp.IsError() {
		return c.fail(cl, statusError(cl.op, resp.StatusCode(), resp.Body()))
	}

	if cl.out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), cl.out); err != nil {
			return c.fail(cl, domain.WrapError(err, domain.EINTERNAL, cl.op, "malformed response from backend"))
		}
	}
	return nil
}

func (c *Client) fail(cl call, err error) error {
	c.metrics.APIError(domain.ErrorCode(err))
	return err
}

// statusError converts a non-2xx response into a *domain.Error, using the
// backend's {"message": "..."} body when it has one.
func statusError(op string, status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := strings.TrimSpace(eb.Message)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(status))
	}
	if msg == "" {
		msg = "request failed with status " + strconv.Itoa(status)
	}

	return &domain.Error{
		Code:    domain.CodeFromHTTPStatus(status),
		Op:      op,
		Message: msg,
		Err:     &StatusError{StatusCode: status},
	}
}

// StatusError records the HTTP status behind a domain error.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return "HTTP " + strconv.Itoa(e.StatusCode)
}

// StatusCode returns the HTTP status that produced err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
