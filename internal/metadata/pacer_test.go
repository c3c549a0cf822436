package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_Waits(t *testing.T) {
	p := IntervalPacer{Interval: 20 * time.Millisecond}

	start := time.Now()
	require.NoError(t, p.Pace(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestIntervalPacer_ZeroInterval(t *testing.T) {
	p := IntervalPacer{}
	require.NoError(t, p.Pace(context.Background()))
}

func TestIntervalPacer_Cancel(t *testing.T) {
	p := IntervalPacer{Interval: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Pace(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
