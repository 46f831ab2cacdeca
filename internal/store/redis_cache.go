package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortlink"
	"go.uber.org/zap"
)

// Cache calls are bounded so an unavailable Redis degrades the redirect to
// a store lookup instead of failing or hanging it.
const cacheCallTimeout = 250 * time.Millisecond

// CachedRepository decorates a shortlink.Repository with a Redis cache of
// the resolve projection. The cache is a non-authoritative accelerator: an
// entry may be stale up to its TTL relative to store deletions and expiry,
// which the resolution path accepts.
type CachedRepository struct {
	store  shortlink.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository creates the caching decorator.
func NewCachedRepository(
	store shortlink.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *CachedRepository {
	return &CachedRepository{
		store:  store,
		client: client,
		prefix: "resolve:",
		ttl:    ttl,
		logger: logger,
	}
}

// Save stores the record and primes the cache off the request path.
func (c *CachedRepository) Save(ctx context.Context, shortURL *shortlink.ShortURL) error {
	if err := c.store.Save(ctx, shortURL); err != nil {
		return err
	}

	go c.cacheResolution(shortURL.Alias, &shortlink.Resolution{
		ID:      shortURL.ID,
		LongURL: shortURL.LongURL,
	})

	return nil
}

func (c *CachedRepository) AliasExists(ctx context.Context, alias shortlink.Alias) (bool, error) {
	// Uniqueness is a store question; the cache holds only live projections.
	return c.store.AliasExists(ctx, alias)
}

// Resolve checks the cache first; any cache miss or failure falls through
// to the store, and store hits repopulate the cache without blocking the
// caller.
func (c *CachedRepository) Resolve(ctx context.Context, alias shortlink.Alias) (*shortlink.Resolution, error) {
	if resolution, ok := c.fromCache(ctx, alias); ok {
		return resolution, nil
	}

	resolution, err := c.store.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}

	go c.cacheResolution(alias, resolution)

	return resolution, nil
}

func (c *CachedRepository) fromCache(ctx context.Context, alias shortlink.Alias) (*shortlink.Resolution, bool) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	fields, err := c.client.HGetAll(ctx, c.prefix+string(alias)).Result()
	if err != nil {
		c.logger.Debug("cache read failed, falling back to store",
			zap.String("alias", string(alias)),
			zap.Error(err),
		)

		return nil, false
	}

	if len(fields) == 0 {
		return nil, false
	}

	return &shortlink.Resolution{
		ID:      fields["id"],
		LongURL: fields["long_url"],
	}, true
}

func (c *CachedRepository) cacheResolution(alias shortlink.Alias, resolution *shortlink.Resolution) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheCallTimeout)
	defer cancel()

	key := c.prefix + string(alias)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":       resolution.ID,
		"long_url": resolution.LongURL,
	})
	pipe.Expire(ctx, key, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Debug("cache write failed",
			zap.String("alias", string(alias)),
			zap.Error(err),
		)
	}
}

// Shutdown is a no-op; the Redis client is managed by the container.
func (c *CachedRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortlink.Repository = (*CachedRepository)(nil)
