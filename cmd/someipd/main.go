// someipd is the SOME/IP daemon: it listens for unicast frames, exposes
// Prometheus metrics, and serves an operator-facing debug HTTP API. It
// carries no transport/session/retry state and no SD state machine —
// it classifies and observes wire traffic, nothing more.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/go-someip/internal/config"
	"github.com/dantte-lp/go-someip/internal/debugapi"
	"github.com/dantte-lp/go-someip/internal/frameio"
	someipmetrics "github.com/dantte-lp/go-someip/internal/metrics"
	appversion "github.com/dantte-lp/go-someip/internal/version"
)

// shutdownTimeout bounds how long the metrics HTTP server waits to drain
// active connections during graceful shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file (YAML)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()))
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(config.ParseLogLevel(cfg.Log.Level))
	logger := newLoggerWithLevel(cfg.Log, logLevel)

	logger.Info("someipd starting",
		slog.String("version", appversion.Version),
		slog.String("frameio_addr", cfg.FrameIO.Addr),
		slog.String("metrics_addr", cfg.Metrics.Addr),
		slog.String("debug_addr", cfg.Debug.Addr),
	)

	reg := prometheus.NewRegistry()
	collector := someipmetrics.NewCollector(reg)

	debugSrv := debugapi.NewServer(cfg.Debug.Addr, logger)

	if err := runServers(cfg, collector, debugSrv, reg, logger); err != nil {
		logger.Error("someipd exited with error", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("someipd stopped")
	return 0
}

// runServers wires the frame listener, metrics server, and debug API
// under one errgroup keyed off a signal-aware context, mirroring the
// daemon shutdown shape used across this codebase's other services.
func runServers(
	cfg *config.Config,
	collector *someipmetrics.Collector,
	debugSrv *debugapi.Server,
	reg *prometheus.Registry,
	logger *slog.Logger,
) error {
	metricsSrv := newMetricsServer(cfg.Metrics, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	listener, err := frameio.NewListener(cfg.FrameIO.Addr)
	if err != nil {
		return fmt.Errorf("create frame listener: %w", err)
	}
	defer listener.Close()

	observer := newMetricsObserver(collector, debugSrv, logger)
	dispatcher := frameio.NewDispatcher(observer, logger)

	g.Go(func() error {
		return dispatcher.Run(gCtx, listener)
	})

	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return debugSrv.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newMetricsServer creates an HTTP server for the Prometheus metrics endpoint.
func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// newLoggerWithLevel creates a structured logger using a shared LevelVar
// so the log level can be adjusted without restarting the process.
func newLoggerWithLevel(cfg config.LogConfig, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
