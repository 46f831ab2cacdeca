package shortlink

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no short URL exists for an alias.
	ErrNotFound = errors.New("short url not found")
	// ErrAliasInUse is returned when a requested alias is already taken.
	ErrAliasInUse = errors.New("short alias already in use")
	// ErrInvalidURL is returned when the long URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidAlias is returned when a custom alias is malformed.
	ErrInvalidAlias = errors.New("invalid short alias")
	// ErrRateLimited is returned when the owner exhausted the creation quota.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Alias is the short token identifying a ShortURL. Aliases are
// case-sensitive and matched exactly.
type Alias string

// ShortURL is the authoritative short URL record.
type ShortURL struct {
	ID          string
	Alias       Alias
	LongURL     string
	OwnerID     string
	Topic       string
	Description string
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// Expired reports whether the record has an expiry in the past.
func (s *ShortURL) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// Resolution is the minimal projection the redirect path needs. It is
// what the cache holds; everything else stays in the store.
type Resolution struct {
	ID      string
	LongURL string
}
