package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/visitlog"
)

// VisitLogPostgresStore appends visit log entries. Entries are never
// updated or deleted by this service.
type VisitLogPostgresStore struct {
	pool *pgxpool.Pool
}

// NewVisitLogPostgresStore creates a Postgres-backed visit log store.
func NewVisitLogPostgresStore(pool *pgxpool.Pool) *VisitLogPostgresStore {
	return &VisitLogPostgresStore{pool: pool}
}

func (s *VisitLogPostgresStore) SaveVisit(ctx context.Context, entry *visitlog.Entry) error {
	query := `
		INSERT INTO visit_logs (id, short_url_id, user_agent, ip_address, os_name, device_type, country, region, city, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		entry.ID,
		entry.ShortURLID,
		entry.UserAgent,
		entry.IPAddress,
		entry.OSName,
		entry.DeviceType,
		entry.Country,
		entry.Region,
		entry.City,
		entry.VisitedAt,
	)

	return err
}

// Compile-time check.
var _ visitlog.Store = (*VisitLogPostgresStore)(nil)
