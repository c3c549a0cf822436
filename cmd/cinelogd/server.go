package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/cinelog/internal/api"
	"github.com/vmunix/cinelog/internal/catalog"
	"github.com/vmunix/cinelog/internal/config"
	"github.com/vmunix/cinelog/internal/metadata"
	"github.com/vmunix/cinelog/internal/migrations"
	"github.com/vmunix/cinelog/internal/server"
	"github.com/vmunix/cinelog/pkg/omdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Store and clients ===
	store := catalog.NewStore(db)
	provider := omdb.New(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithLogger(logger),
	)

	// === Services ===
	orchestrator := metadata.NewService(
		store,
		provider,
		metadata.IntervalPacer{Interval: cfg.OMDb.RateLimitDelay.Duration},
		logger.With("component", "metadata"),
		metadata.Config{FreshnessWindow: cfg.Cache.FreshnessWindow.Duration},
	)

	// === HTTP Setup ===
	mux := http.NewServeMux()
	apiServer := api.New(store, orchestrator, api.Config{
		UserToken:  cfg.Auth.UserToken,
		AdminToken: cfg.Auth.AdminToken,
	})
	apiServer.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"omdb", cfg.OMDb.BaseURL,
		"freshness_window", cfg.Cache.FreshnessWindow.Duration,
		"purge_interval", cfg.Cache.PurgeInterval.Duration,
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(
		logRequests(mux, logger),
		orchestrator,
		server.Config{
			Addr:          addr,
			PurgeInterval: cfg.Cache.PurgeInterval.Duration,
		},
		logger.With("component", "server"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runner.Run(ctx)
}
