package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/ratelimit"
)

type rateLimitWindow struct {
	count       int
	maxRequests int
	start       time.Time
	end         time.Time
}

// RateLimitMemoryStore is an in-memory ratelimit.Store. The mutex gives it
// the same take-is-atomic guarantee the Postgres implementation gets from
// conditional statements.
type RateLimitMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*rateLimitWindow
}

// NewRateLimitMemoryStore creates an empty in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		windows: make(map[string]*rateLimitWindow),
	}
}

func (s *RateLimitMemoryStore) Take(
	_ context.Context, ownerID string, now time.Time, max int, window time.Duration,
) (ratelimit.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[ownerID]

	switch {
	case !ok:
		// Lazy creation on the first attempt.
		w = &rateLimitWindow{count: 1, maxRequests: max, start: now, end: now.Add(window)}
		s.windows[ownerID] = w
	case !now.Before(w.end):
		// Hard reset at the boundary, not a rolling decay.
		w.count = 1
		w.start = now
		w.end = now.Add(window)
	case w.count >= w.maxRequests:
		return ratelimit.Decision{Allowed: false, Remaining: 0, WindowEnd: w.end}, nil
	default:
		w.count++
	}

	return ratelimit.Decision{
		Allowed:   true,
		Remaining: w.maxRequests - w.count,
		WindowEnd: w.end,
	}, nil
}

// Compile-time check.
var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
