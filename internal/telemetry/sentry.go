package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// SentryConfig holds configuration for Sentry error tracking.
type SentryConfig struct {
	DSN         string
	Enabled     bool
	Environment string
	Release     string

	// SampleRate of 0 means capture everything.
	SampleRate       float64
	TracesSampleRate float64
	Debug            bool
}

var enabled atomic.Bool

// InitSentry initializes the Sentry client and returns a flush function to
// run on shutdown. A disabled or DSN-less config leaves every capture helper
// in this package as a no-op.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (func(), error) {
	enabled.Store(false)

	if !cfg.Enabled {
		logger.Info("Sentry disabled (SENTRY_ENABLED=false or DSN not configured)")
		return func() {}, nil
	}
	if cfg.DSN == "" {
		logger.Warn("Sentry DSN not configured, disabling error tracking")
		return func() {}, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
		BeforeSend:       scrub,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	enabled.Store(true)

	logger.Info("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
		"traces_sample_rate", cfg.TracesSampleRate,
	)

	return func() { sentry.Flush(flushTimeout) }, nil
}

// scrub drops credentials from outgoing events. Bearer tokens never leave
// the process.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil {
		delete(event.Request.Headers, "Authorization")
		delete(event.Request.Headers, "Cookie")
	}
	return event
}

// IsEnabled reports whether events are being sent.
func IsEnabled() bool {
	return enabled.Load()
}

// tagDomainError labels the event with the error's code and operation so
// swallowed store failures group by what failed rather than by message.
func tagDomainError(scope *sentry.Scope, err error) {
	scope.SetTag("error.code", domain.ErrorCode(err))
	if op := domain.ErrorOp(err); op != "" {
		scope.SetTag("error.op", op)
	}
}

// CaptureError reports err on the global hub. Safe to call when disabled.
func CaptureError(err error, extras ...map[string]interface{}) {
	if !IsEnabled() || err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		tagDomainError(scope, err)
		for _, m := range extras {
			scope.SetExtras(m)
		}
		sentry.CaptureException(err)
	})
}

// CaptureErrorFromContext reports err on the request's hub, which carries
// the user set by SentryContextMiddleware.
func CaptureErrorFromContext(ctx context.Context, err error, extras map[string]interface{}) {
	if !IsEnabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		tagDomainError(scope, err)
		scope.SetExtras(extras)
		hub.CaptureException(err)
	})
}

// SetUser attaches the signed-in user to subsequent events. An empty id
// clears it.
func SetUser(id, email string) {
	if !IsEnabled() {
		return
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: id, Email: email})
	})
}

// AddBreadcrumb records a local mutation so a later captured failure shows
// what the user did before it.
func AddBreadcrumb(category, message string, data map[string]interface{}) {
	if !IsEnabled() {
		return
	}

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "default",
		Category:  category,
		Message:   message,
		Data:      data,
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	})
}

// StartSpan starts a performance span. The returned function finishes it.
func StartSpan(ctx context.Context, operation, description string) (context.Context, func()) {
	if !IsEnabled() {
		return ctx, func() {}
	}

	span := sentry.StartSpan(ctx, operation)
	span.Description = description
	return span.Context(), span.Finish
}

// RecoverWithSentry reports a panic and re-panics.
//
//	defer telemetry.RecoverWithSentry()
func RecoverWithSentry() {
	if r := recover(); r != nil {
		if IsEnabled() {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(flushTimeout)
		}
		panic(r)
	}
}

// SentryMiddleware gives each request its own hub carrying the request.
// Panics are left to router.Recovery, which reports them through
// CaptureErrorFromContext.
func SentryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}
			hub.Scope().SetRequest(r)

			next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
		})
	}
}

// UserInfo identifies the caller on captured events.
type UserInfo struct {
	ID    string
	Email string
	Role  string
}

// UserContextExtractor resolves the caller from a request context.
type UserContextExtractor func(ctx context.Context) *UserInfo

// SentryContextMiddleware tags the request hub with the caller. It must run
// after the middleware that resolves the bearer token.
func SentryContextMiddleware(userExtractor UserContextExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsEnabled() || userExtractor == nil {
				next.ServeHTTP(w, r)
				return
			}

			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}

			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("route", r.Method+" "+r.URL.Path)
				if user := userExtractor(r.Context()); user != nil {
					scope.SetUser(sentry.User{ID: user.ID, Email: user.Email})
					scope.SetTag("role", user.Role)
				}
			})

			next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
		})
	}
}

// HTTPTransport records a span per backend call.
type HTTPTransport struct {
	Transport http.RoundTripper
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if !IsEnabled() {
		return next.RoundTrip(req)
	}

	span := sentry.StartSpan(req.Context(), "http.client")
	span.Description = req.Method + " " + req.URL.Path
	if id := req.Header.Get("X-Request-ID"); id != "" {
		span.SetTag("request_id", id)
	}
	defer span.Finish()

	resp, err := next.RoundTrip(req)
	switch {
	case err != nil:
		span.Status = sentry.SpanStatusUnavailable
	case resp.StatusCode >= http.StatusInternalServerError:
		span.Status = sentry.SpanStatusInternalError
		span.SetData("http.status_code", resp.StatusCode)
	default:
		span.Status = sentry.SpanStatusOK
		span.SetData("http.status_code", resp.StatusCode)
	}

	return resp, err
}
