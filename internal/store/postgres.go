package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortlink"
)

// PostgresStore is the PostgreSQL implementation of shortlink.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed short URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, shortURL *shortlink.ShortURL) error {
	if shortURL.ID == "" {
		shortURL.ID = uuid.NewString()
	}

	query := `
		INSERT INTO short_urls (id, alias, long_url, owner_id, topic, description, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		shortURL.ID,
		string(shortURL.Alias),
		shortURL.LongURL,
		shortURL.OwnerID,
		nullableString(shortURL.Topic),
		nullableString(shortURL.Description),
		shortURL.CreatedAt,
		shortURL.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shortlink.ErrAliasInUse
		}

		return err
	}

	return nil
}

func (p *PostgresStore) AliasExists(ctx context.Context, alias shortlink.Alias) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM short_urls WHERE alias = $1)`

	var exists bool
	if err := p.pool.QueryRow(ctx, query, string(alias)).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresStore) Resolve(ctx context.Context, alias shortlink.Alias) (*shortlink.Resolution, error) {
	// Alias matching is exact and case-sensitive; expired records resolve
	// as not found.
	query := `
		SELECT id, long_url
		FROM short_urls
		WHERE alias = $1
		  AND (expires_at IS NULL OR expires_at > now())
	`

	var resolution shortlink.Resolution

	err := p.pool.QueryRow(ctx, query, string(alias)).Scan(
		&resolution.ID,
		&resolution.LongURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	return &resolution, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Compile-time check.
var _ shortlink.Repository = (*PostgresStore)(nil)
