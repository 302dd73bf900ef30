// Command chalk serves standings for the WRPF UK Novice League: it
// ingests a results CSV, runs the standings pipeline and exposes the
// division leaderboards over HTTP together with a public board page,
// API docs and Prometheus metrics.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/chalk/internal/adapters/http/api"
	"github.com/okian/chalk/internal/adapters/http/docs"
	"github.com/okian/chalk/internal/adapters/http/site"
	"github.com/okian/chalk/internal/adapters/watch"
	service "github.com/okian/chalk/internal/app"
	"github.com/okian/chalk/internal/config"
	"github.com/okian/chalk/pkg/logger"
	"github.com/okian/chalk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Drop the default Go and process collectors; the service exports
	// its own system metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		// Logger is not available yet, write straight to stderr.
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	order, err := cfg.Divisions()
	if err != nil {
		log.Error(ctx, "invalid division order", logger.Error(err))
		return
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithResultsPath(cfg.ResultsPath),
		service.WithAppearanceCap(cfg.AppearanceCap),
		service.WithDivisionOrder(order),
		service.WithLeagueInfo(cfg.LeagueInfo()),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Rebuild standings whenever the results file changes on disk.
	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New(cfg.ResultsPath, svc,
			watch.WithLogger(log),
			watch.WithDebounce(time.Duration(cfg.WatchDebounceMS)*time.Millisecond),
		)
		if err != nil {
			log.Error(ctx, "failed to create results watcher", logger.Error(err))
			return
		}
		if err := watcher.Start(ctx); err != nil {
			log.Error(ctx, "failed to start results watcher", logger.Error(err))
			return
		}
	}

	// Start system metrics updater.
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Public board page at / and API docs under /api-docs.
	site.Register(ctx, mux)
	docs.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("results_path", cfg.ResultsPath),
			logger.Bool("watch", cfg.Watch),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	if watcher != nil {
		watcher.Stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater periodically refreshes process-level
// gauges until the context is cancelled.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics samples memory use and goroutine count.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
