package steam

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultStaggerStep keeps per-game fetches under the per-key request budget.
const DefaultStaggerStep = 125 * time.Millisecond

// Pacer delays the start of the index-th unit of work. Implementations only
// offset start times; callers still run the work concurrently.
type Pacer interface {
	Wait(ctx context.Context, index int) error
}

// StaggerPacer delays the index-th caller by index × Step.
type StaggerPacer struct {
	Step time.Duration
}

func (p StaggerPacer) Wait(ctx context.Context, index int) error {
	delay := time.Duration(index) * p.Step
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// BucketPacer admits one caller per step from a token bucket with burst 1.
// Start times are spaced the same way as StaggerPacer, but in arrival order
// rather than index order.
type BucketPacer struct {
	limiter *rate.Limiter
}

func NewBucketPacer(step time.Duration) *BucketPacer {
	limit := rate.Inf
	if step > 0 {
		limit = rate.Every(step)
	}
	return &BucketPacer{limiter: rate.NewLimiter(limit, 1)}
}

func (p *BucketPacer) Wait(ctx context.Context, _ int) error {
	return p.limiter.Wait(ctx)
}
