package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token   string
	ownerID string
}

func (v stubVerifier) Verify(_ context.Context, token string) (string, error) {
	if token != v.token {
		return "", auth.ErrInvalidToken
	}

	return v.ownerID, nil
}

func setupAuthAPI(t *testing.T) (*chi.Mux, chan string) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	verifier := stubVerifier{token: "good-token", ownerID: "owner-1"}
	api.UseMiddleware(middleware.Authenticate(api, verifier))

	ownerChan := make(chan string, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		ownerID, _ := handlers.OwnerFromContext(ctx)
		ownerChan <- ownerID

		return &testOutput{Body: "ok"}, nil
	})

	return router, ownerChan
}

func TestAuthenticate(t *testing.T) {
	t.Run("puts the verified owner in context", func(t *testing.T) {
		router, ownerChan := setupAuthAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "owner-1", <-ownerChan)
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		router, ownerChan := setupAuthAPI(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, ownerChan)
	})

	t.Run("rejects a non-bearer authorization header", func(t *testing.T) {
		router, _ := setupAuthAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		router, _ := setupAuthAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bad-token")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an empty bearer token", func(t *testing.T) {
		router, _ := setupAuthAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer ")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
