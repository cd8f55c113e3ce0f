package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"

	"github.com/buzzline/consumer/config"
	"github.com/buzzline/consumer/internal/ingest"
	"github.com/buzzline/consumer/internal/normalize"
	"github.com/buzzline/consumer/internal/ports"
	elasticrepo "github.com/buzzline/consumer/internal/repo/elastic"
	"github.com/buzzline/consumer/internal/repo/postgres"
	"github.com/buzzline/consumer/internal/source/file"
	"github.com/buzzline/consumer/internal/source/kafka"
	rest "github.com/buzzline/consumer/internal/transport/http"
	"github.com/buzzline/consumer/internal/usecase"
	"github.com/buzzline/consumer/pkg/logger"
	"github.com/buzzline/consumer/pkg/metrics"
	"github.com/buzzline/consumer/pkg/telemetry"
)

// Bootstrap failures the operator treats differently get distinct sentinels;
// main maps them to exit codes.
var (
	ErrSchemaSetup       = errors.New("schema setup failed")
	ErrSourceUnavailable = errors.New("source unavailable")
)

// App is the assembled service: the ingestion runner plus the ops HTTP server.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	Runner          ports.IngestLoop
	gracefulTimeout time.Duration
}

// Cleanup releases resources in reverse construction order.
type Cleanup func()

// applyGinMode sets the Gin mode from config; unknown values fall back to
// debug with a warning.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// buildSink constructs the store variant selected by cfg.Sink.Kind and brings
// its schema up. The returned closer tears down the underlying handle.
func buildSink(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.RecordSink, func(), error) {
	var sink ports.RecordSink
	var closeSink func()

	switch cfg.Sink.Kind {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSchemaSetup, err)
		}
		sink = postgres.NewMessageRepository(pool, log, cfg.Postgres.RetryBase, cfg.Postgres.RetryMaxAttempts)
		closeSink = pool.Close
	case "elastic":
		client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Elastic.Addresses})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSchemaSetup, err)
		}
		es, err := elasticrepo.NewSink(client, cfg.Elastic.Index, log, cfg.Elastic.RetryBase, cfg.Elastic.RetryMaxAttempts)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSchemaSetup, err)
		}
		sink = es
		closeSink = func() {}
	default:
		return nil, nil, fmt.Errorf("%w: unknown sink kind %q", ErrSchemaSetup, cfg.Sink.Kind)
	}

	if err := sink.EnsureSchema(ctx, cfg.Sink.ResetSchema); err != nil {
		closeSink()
		return nil, nil, fmt.Errorf("%w: %v", ErrSchemaSetup, err)
	}
	return sink, closeSink, nil
}

// buildSource constructs the feed selected by cfg.Source.Kind. Kafka gets a
// bounded reachability probe first so a dead broker fails startup instead of
// spinning forever.
func buildSource(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.MessageSource, error) {
	switch cfg.Source.Kind {
	case "file":
		return file.NewTailer(cfg.File.Path, log), nil
	case "kafka":
		if err := kafka.WaitForBroker(ctx, cfg.Kafka.Brokers, cfg.Kafka.ProbeAttempts, cfg.Kafka.ProbeDelay, log); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		return kafka.NewSource(&kafka.SourceConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			GroupID:     cfg.Kafka.GroupID,
			StartOffset: cfg.Kafka.StartOffset,
		}, log), nil
	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", ErrSourceUnavailable, cfg.Source.Kind)
	}
}

// Bootstrap assembles the dependencies and returns the app, a cleanup
// function, and an error.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	sink, closeSink, err := buildSink(ctx, cfg, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// OTEL tracing when enabled; no-op otherwise.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	source, err := buildSource(ctx, cfg, logg)
	if err != nil {
		closeSink()
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	service := usecase.NewIngestService(sink, normalize.NewNormalizer(), logg)

	runner := ingest.NewRunner(source, service, logg, ingest.Config{
		PollInterval:   cfg.Source.PollInterval,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	})

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	httpHandler := rest.NewHandler(service, sink, logg)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Runner:          runner,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := source.Close(); err != nil {
			logg.Warnf(ctx, "source close error: %v", err)
		}
		if err := sink.Close(); err != nil {
			logg.Warnf(ctx, "sink close error: %v", err)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run starts the HTTP server and the ingestion runner, waits for context
// cancellation or a background error, then stops both.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.Logger.Infof(ctx, "ingestion runner starting")
		if err := a.Runner.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	return nil
}
