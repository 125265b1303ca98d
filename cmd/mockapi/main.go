package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/atelier/internal"
	"github.com/dukerupert/atelier/internal/mockapi"
	"github.com/dukerupert/atelier/internal/router"
	"github.com/dukerupert/atelier/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	flush, err := telemetry.InitSentry(sentryConfig(cfg.Sentry), logger)
	if err != nil {
		logger.Warn("sentry disabled", "error", err)
	} else {
		defer flush()
	}
	defer telemetry.RecoverWithSentry()

	backend := mockapi.NewBackend()
	if cfg.MockAPI.Seed {
		backend.Seed()
		logger.Info("sample catalog loaded", "products", len(mockapi.SeedProducts()))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []mockapi.Option{
		mockapi.WithLogger(logger),
		mockapi.WithMetrics(cfg.Metrics.Namespace+"_mockapi", reg),
	}
	if cfg.MockAPI.RateLimit > 0 {
		opts = append(opts, mockapi.WithRateLimit(cfg.MockAPI.RateLimit, cfg.MockAPI.RateBurst))
	}
	if len(cfg.MockAPI.CORSOrigins) > 0 {
		opts = append(opts, mockapi.WithCORS(cfg.MockAPI.CORSOrigins...))
	}

	srv := mockapi.New(backend, opts...)
	defer srv.Close()

	// Metrics live beside the API so scraping is not throttled or logged per call.
	root := router.New()
	root.Handle(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	root.Handle("", "/", srv.Handler())

	addr := fmt.Sprintf(":%d", cfg.MockAPI.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting mock API", "address", addr, "base_path", "/api")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down mock API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func sentryConfig(c internal.SentryConfig) telemetry.SentryConfig {
	return telemetry.SentryConfig{
		DSN:              c.DSN,
		Enabled:          c.Enabled,
		Environment:      c.Environment,
		Release:          c.Release,
		SampleRate:       c.SampleRate,
		TracesSampleRate: c.TracesSampleRate,
		Debug:            c.Debug,
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
