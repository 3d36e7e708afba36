package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/underdog/internal/adapters/http/api"
	"github.com/okian/underdog/internal/adapters/http/swagger"
	"github.com/okian/underdog/internal/adapters/odds"
	"github.com/okian/underdog/internal/adapters/repository"
	app "github.com/okian/underdog/internal/app"
	"github.com/okian/underdog/internal/config"
	"github.com/okian/underdog/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithSeason(cfg.Season),
		app.WithCurrentWeek(cfg.CurrentWeek),
		app.WithSportKey(cfg.SportKey),
	}

	// Snapshot persistence is best-effort: a store that fails to open is
	// logged and the pool runs in memory for the session.
	if cfg.SnapshotPath != "" {
		store, err := repository.Open(cfg.SnapshotPath)
		if err != nil {
			log.Warn(ctx, "snapshot store unavailable; running in memory", logger.Error(err))
		} else {
			defer func() { _ = store.Close() }()
			opts = append(opts, app.WithSnapshots(store))
		}
	}

	// Without an API key the feed rejects every request; skip straight to
	// the sample schedule instead of burning a doomed fetch.
	if cfg.OddsAPIKey != "" {
		feed := odds.NewClient(
			odds.WithBaseURL(cfg.OddsBaseURL),
			odds.WithAPIKey(cfg.OddsAPIKey),
			odds.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		)
		opts = append(opts, app.WithScheduleProvider(feed))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs.
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxStandingsLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
