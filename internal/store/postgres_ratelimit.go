package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/ratelimit"
)

// RateLimitPostgresStore keeps one fixed-window row per owner. Every state
// transition is a single guarded statement, so the count can never pass the
// ceiling even under concurrent creations by the same owner. A plain
// read-modify-write would not give that guarantee.
type RateLimitPostgresStore struct {
	pool *pgxpool.Pool
}

// NewRateLimitPostgresStore creates a Postgres-backed rate limit store.
func NewRateLimitPostgresStore(pool *pgxpool.Pool) *RateLimitPostgresStore {
	return &RateLimitPostgresStore{pool: pool}
}

// Concurrent takes can race between the guarded statements (for example two
// callers both trying the lazy insert); each loop iteration re-observes the
// row, so a couple of retries always reach a terminal outcome.
const takeAttempts = 3

func (s *RateLimitPostgresStore) Take(
	ctx context.Context, ownerID string, now time.Time, max int, window time.Duration,
) (ratelimit.Decision, error) {
	windowEnd := now.Add(window)

	for range takeAttempts {
		// Active window with headroom: conditional increment.
		decision, ok, err := s.tryOne(ctx, `
			UPDATE rate_limit_windows
			SET request_count = request_count + 1
			WHERE owner_id = $1 AND window_end > $2 AND request_count < max_requests
			RETURNING request_count, max_requests, window_end
		`, ownerID, now)
		if err != nil || ok {
			return decision, err
		}

		// Expired window: hard reset to count 1.
		decision, ok, err = s.tryOne(ctx, `
			UPDATE rate_limit_windows
			SET request_count = 1, window_start = $2, window_end = $3
			WHERE owner_id = $1 AND window_end <= $2
			RETURNING request_count, max_requests, window_end
		`, ownerID, now, windowEnd)
		if err != nil || ok {
			return decision, err
		}

		// No row yet: lazy creation on the first attempt.
		decision, ok, err = s.tryOne(ctx, `
			INSERT INTO rate_limit_windows (owner_id, request_count, max_requests, window_start, window_end)
			VALUES ($1, 1, $4, $2, $3)
			ON CONFLICT (owner_id) DO NOTHING
			RETURNING request_count, max_requests, window_end
		`, ownerID, now, windowEnd, max)
		if err != nil || ok {
			return decision, err
		}

		// The row exists, is active, and may be at the ceiling.
		var (
			count, maxRequests int
			end                time.Time
		)

		err = s.pool.QueryRow(ctx,
			`SELECT request_count, max_requests, window_end FROM rate_limit_windows WHERE owner_id = $1`,
			ownerID,
		).Scan(&count, &maxRequests, &end)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Row deleted between statements; retry from the top.
				continue
			}

			return ratelimit.Decision{}, err
		}

		if end.After(now) && count >= maxRequests {
			return ratelimit.Decision{Allowed: false, Remaining: 0, WindowEnd: end}, nil
		}

		// Raced with a reset or an increment; re-observe.
	}

	return ratelimit.Decision{}, errors.New("rate limit take did not settle")
}

func (s *RateLimitPostgresStore) tryOne(
	ctx context.Context, query string, args ...any,
) (ratelimit.Decision, bool, error) {
	var (
		count, maxRequests int
		end                time.Time
	)

	err := s.pool.QueryRow(ctx, query, args...).Scan(&count, &maxRequests, &end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ratelimit.Decision{}, false, nil
		}

		return ratelimit.Decision{}, false, err
	}

	return ratelimit.Decision{
		Allowed:   true,
		Remaining: maxRequests - count,
		WindowEnd: end,
	}, true, nil
}

// Compile-time check.
var _ ratelimit.Store = (*RateLimitPostgresStore)(nil)
