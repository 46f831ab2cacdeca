package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one quota take.
type Decision struct {
	Allowed   bool
	Remaining int
	WindowEnd time.Time
}

// Limiter gates short URL creation per owner.
type Limiter interface {
	// Allow consumes one creation attempt for the owner. A denied decision
	// is not an error; errors mean the store could not be consulted.
	Allow(ctx context.Context, ownerID string) (Decision, error)
}

// Store holds the per-owner window state. Take must perform each state
// transition (lazy insert, hard reset, conditional increment) atomically so
// the count never exceeds max under concurrent callers.
type Store interface {
	Take(ctx context.Context, ownerID string, now time.Time, max int, window time.Duration) (Decision, error)
}

// FixedWindowLimiter counts creations in fixed windows that reset entirely
// at the boundary. No rolling decay.
type FixedWindowLimiter struct {
	store  Store
	max    int
	window time.Duration
	now    func() time.Time
}

// NewFixedWindowLimiter creates a limiter allowing max creations per window.
func NewFixedWindowLimiter(store Store, max int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:  store,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, ownerID string) (Decision, error) {
	return l.store.Take(ctx, ownerID, l.now(), l.max, l.window)
}
