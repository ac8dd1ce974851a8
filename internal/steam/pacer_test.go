package steam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaggerPacer_DelayScalesWithIndex(t *testing.T) {
	p := StaggerPacer{Step: 20 * time.Millisecond}

	start := time.Now()
	require.NoError(t, p.Wait(context.Background(), 0))
	assert.Less(t, time.Since(start), 15*time.Millisecond)

	start = time.Now()
	require.NoError(t, p.Wait(context.Background(), 3))
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestStaggerPacer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := StaggerPacer{Step: time.Hour}
	assert.ErrorIs(t, p.Wait(ctx, 1), context.Canceled)
}

func TestBucketPacer_SpacesCallers(t *testing.T) {
	p := NewBucketPacer(20 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Wait(context.Background(), i))
	}
	// first token is free, the remaining three wait one step each
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestBucketPacer_ZeroStepIsUnlimited(t *testing.T) {
	p := NewBucketPacer(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background(), i))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
