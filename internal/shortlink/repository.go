package shortlink

import "context"

// Repository is the persistent store of short URLs. Implementations may
// layer a cache on top of Resolve; correctness is defined against the
// underlying store.
type Repository interface {
	// Save inserts a new short URL. Returns ErrAliasInUse when the alias
	// is already taken. The store assigns the record ID.
	Save(ctx context.Context, shortURL *ShortURL) error

	// AliasExists reports whether any record holds the alias, expired or not.
	AliasExists(ctx context.Context, alias Alias) (bool, error)

	// Resolve returns the redirect projection for an alias. Expired and
	// unknown aliases both return ErrNotFound.
	Resolve(ctx context.Context, alias Alias) (*Resolution, error)
}
