package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/telemetry"
)

// Storage keys of the persisted snapshots.
const (
	CartStorageKey     = "cart-storage"
	WishlistStorageKey = "wishlist-storage"
)

type options struct {
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// Option configures a store.
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

// mirror performs the best-effort remote leg shared by both stores.
type mirror struct {
	name    string
	session Session
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// call runs fn when a session is active. Failures are logged, reported and
// swallowed; the caller's local state is never rolled back.
func (m mirror) call(ctx context.Context, op, productID string, fn func(context.Context) error) {
	if m.session == nil || !m.session.Active() {
		m.metrics.Remote(m.name, op, telemetry.OutcomeSkipped)
		return
	}

	if err := fn(ctx); err != nil {
		m.logger.Warn("backend call failed, keeping local state",
			"op", m.name+"."+op,
			"product_id", productID,
			"error", err,
		)
		telemetry.CaptureError(err, map[string]interface{}{
			"op":         m.name + "." + op,
			"product_id": productID,
		})
		m.metrics.Remote(m.name, op, telemetry.OutcomeFailed)
		return
	}

	m.metrics.Remote(m.name, op, telemetry.OutcomeOK)
}

// snapshot reads and writes a JSON document under a fixed storage key.
type snapshot struct {
	key     string
	storage storage.Storage
	logger  *slog.Logger
	metrics *telemetry.ClientMetrics
}

// load decodes the stored document into v. A missing document leaves v
// untouched; an unreadable one is logged and ignored.
func (s snapshot) load(ctx context.Context, v interface{}) {
	if s.storage == nil {
		return
	}

	data, err := s.storage.Get(ctx, s.key)
	if storage.IsNotFound(err) {
		return
	}
	if err != nil {
		s.logger.Warn("failed to read snapshot", "key", s.key, "error", err)
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("discarding corrupt snapshot", "key", s.key, "error", err)
	}
}

// save writes v. Failures are logged and counted; the in-memory state
// remains authoritative for the rest of the process lifetime.
func (s snapshot) save(ctx context.Context, v interface{}) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(v)
	if err == nil {
		err = s.storage.Put(ctx, s.key, data)
	}
	if err != nil {
		s.logger.Error("failed to persist snapshot", "key", s.key, "error", err)
		telemetry.CaptureError(err, map[string]interface{}{"key": s.key})
		s.metrics.PersistFailed(s.key)
	}
}
