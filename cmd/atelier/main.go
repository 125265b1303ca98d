// Command atelier is a terminal storefront: it drives the cart, wishlist,
// custom order workflow and checkout against the storefront API.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/apiclient"
	"github.com/dukerupert/atelier/internal/crypto"
	"github.com/dukerupert/atelier/internal/service"
	"github.com/dukerupert/atelier/internal/session"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/store"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJob = "atelier_cli"

// app is the composition root: one instance of every store and service,
// threaded through the commands.
type app struct {
	cfg    *internal.Config
	logger *slog.Logger
	out    io.Writer

	storage  storage.Storage
	session  *session.Manager
	api      *apiclient.Client
	cart     *store.CartStore
	wishlist *store.WishlistStore

	catalog      service.CatalogService
	customOrders service.CustomOrderService
	checkout     service.CheckoutService

	registry *prometheus.Registry
}

func newApp(ctx context.Context, cfg *internal.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	kv, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage initialization failed: %w", err)
	}

	var enc crypto.Encryptor
	if cfg.EncryptionKey != "" {
		key, err := crypto.DecodeKeyBase64(cfg.EncryptionKey)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
		}
		if enc, err = crypto.NewAESEncryptor(key); err != nil {
			kv.Close()
			return nil, fmt.Errorf("encryptor initialization failed: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewClientMetrics(cfg.Metrics.Namespace, reg)

	sess := session.NewManager(ctx, kv, enc, logger)
	api := apiclient.New(cfg.API, sess,
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(metrics),
	)

	storeOpts := []store.Option{store.WithLogger(logger), store.WithMetrics(metrics)}
	cart := store.NewCartStore(ctx, api, sess, kv, storeOpts...)
	wishlist := store.NewWishlistStore(ctx, api, sess, kv, storeOpts...)

	serviceOpts := []service.Option{service.WithLogger(logger), service.WithMetrics(metrics)}

	return &app{
		cfg:          cfg,
		logger:       logger,
		out:          out,
		storage:      kv,
		session:      sess,
		api:          api,
		cart:         cart,
		wishlist:     wishlist,
		catalog:      service.NewCatalogService(api),
		customOrders: service.NewCustomOrderService(api, serviceOpts...),
		checkout:     service.NewCheckoutService(api, cart, sess, serviceOpts...),
		registry:     reg,
	}, nil
}

func (a *app) Close() error {
	return a.storage.Close()
}

// pushMetrics hands this invocation's client metrics to a Pushgateway. A
// CLI process exits too quickly to be scraped.
func (a *app) pushMetrics(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return push.New(a.cfg.Metrics.PushURL, pushJob).
		Gatherer(a.registry).
		PushContext(ctx)
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Logs go to stderr so command output stays clean.
	logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

	flush, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		logger.Warn("sentry disabled", "error", err)
	} else {
		defer flush()
	}
	defer telemetry.RecoverWithSentry()

	a, err := newApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.dispatch(ctx, args)

	if cfg.Metrics.Enabled && cfg.Metrics.PushURL != "" {
		if perr := a.pushMetrics(context.WithoutCancel(ctx)); perr != nil {
			logger.Warn("failed to push metrics", "url", cfg.Metrics.PushURL, "error", perr)
		}
	}
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.SetFlags(0)
		log.Fatal(err)
	}
}
