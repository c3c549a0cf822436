package metadata

import (
	"context"
	"time"
)

// Pacer spaces consecutive provider calls within one orchestration run.
// The upstream provider enforces a request-rate limit; exceeding it degrades
// to per-item provider errors.
type Pacer interface {
	Pace(ctx context.Context) error
}

// IntervalPacer waits a fixed minimum interval between calls. A zero or
// negative interval makes it a no-op, which tests use to avoid real delays.
type IntervalPacer struct {
	Interval time.Duration
}

// Pace blocks for the configured interval or until the context is canceled.
func (p IntervalPacer) Pace(ctx context.Context) error {
	if p.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
