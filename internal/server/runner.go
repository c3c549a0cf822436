// Package server manages the HTTP server and background maintenance lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Purger is the cache maintenance surface the janitor drives.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Config for the runner.
type Config struct {
	Addr          string
	PurgeInterval time.Duration // 0 disables the periodic purge
}

// Runner owns the HTTP server and the optional purge janitor.
type Runner struct {
	handler http.Handler
	purger  Purger
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(handler http.Handler, purger Purger, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		handler: handler,
		purger:  purger,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts the server and janitor and blocks until the context is canceled
// or a component fails. Shutdown is graceful: in-flight requests get ten
// seconds to complete.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{Addr: r.config.Addr, Handler: r.handler}

	g.Go(func() error {
		r.logger.Info("server listening", "addr", r.config.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if r.config.PurgeInterval > 0 {
		g.Go(func() error {
			return r.runJanitor(ctx)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runJanitor purges expired records on a fixed interval. Purge failures are
// logged and retried on the next tick rather than stopping the server.
func (r *Runner) runJanitor(ctx context.Context) error {
	ticker := time.NewTicker(r.config.PurgeInterval)
	defer ticker.Stop()

	r.logger.Info("purge janitor started", "interval", r.config.PurgeInterval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.purger.PurgeExpired(ctx); err != nil {
				r.logger.Error("periodic purge failed", "error", err)
			}
		}
	}
}
