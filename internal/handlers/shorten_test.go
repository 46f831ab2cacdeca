package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/shortlink"
	"github.com/serroba/shortlink/internal/store"
	"github.com/serroba/shortlink/internal/visitlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// allowAll is a limiter stub that always admits the creation.
type allowAll struct{}

func (allowAll) Allow(_ context.Context, _ string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true, Remaining: 9, WindowEnd: time.Now().Add(time.Hour)}, nil
}

// denyAll is a limiter stub that always reports an exhausted window.
type denyAll struct{}

func (denyAll) Allow(_ context.Context, _ string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: false, WindowEnd: time.Now().Add(time.Hour)}, nil
}

func newShortenHandler(repo shortlink.Repository, limiter ratelimit.Limiter) *handlers.ShortenHandler {
	service := shortlink.NewService(
		repo,
		limiter,
		func() string { return "gen00001" },
		"http://localhost:8888",
		noopPublish[visitlog.LinkCreatedEvent](),
		zap.NewNop(),
	)

	return handlers.NewShortenHandler(service, zap.NewNop())
}

func ownerContext(ownerID string) context.Context {
	return handlers.ContextWithOwner(context.Background(), ownerID)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, status, statusErr.GetStatus())
}

func TestShorten(t *testing.T) {
	t.Run("creates short url for authenticated owner", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com/very/long/path"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8888/gen00001", resp.Body.ShortURL)
		assert.False(t, resp.Body.CreatedAt.IsZero())
	})

	t.Run("honors the custom alias", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"
		req.Body.ShortAlias = "my-link"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8888/my-link", resp.Body.ShortURL)
	})

	t.Run("returns 401 without an owner in context", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"

		resp, err := handler.Shorten(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 401)
	})

	t.Run("returns 400 for an invalid url", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "not-a-url"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 400)
	})

	t.Run("returns 400 for an invalid alias", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"
		req.Body.ShortAlias = "has space"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 400)
	})

	t.Run("returns 400 for an alias already in use", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Save(context.Background(), &shortlink.ShortURL{
			Alias:   "taken",
			LongURL: "https://existing.com",
		}))

		handler := newShortenHandler(memStore, allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"
		req.Body.ShortAlias = "taken"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 400)
	})

	t.Run("returns 429 when the owner is rate limited", func(t *testing.T) {
		handler := newShortenHandler(store.NewMemoryStore(), denyAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 429)
	})

	t.Run("returns 500 on unexpected store errors", func(t *testing.T) {
		handler := newShortenHandler(failingRepo{}, allowAll{})

		req := &handlers.ShortenRequest{}
		req.Body.LongURL = "https://example.com"

		resp, err := handler.Shorten(ownerContext("owner-1"), req)

		assert.Nil(t, resp)
		assertStatus(t, err, 500)
	})
}

func TestContextWithRequestMeta(t *testing.T) {
	t.Run("adds and retrieves request metadata from context", func(t *testing.T) {
		meta := handlers.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
		}
		ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

		retrieved := handlers.RequestMetaFromContext(ctx)
		assert.Equal(t, meta, retrieved)
	})
}
