// Package service holds the request/response operations that are not
// optimistic: custom order negotiation, catalog browsing and checkout.
// Every call is a single backend request whose error reaches the caller.
package service

import (
	"log/slog"

	"github.com/dukerupert/atelier/internal/telemetry"
)

type options struct {
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// Option configures a service.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Session reports whether a signed-in session exists.
type Session interface {
	Active() bool
}
