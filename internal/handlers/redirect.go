package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/shortlink"
	"go.uber.org/zap"
)

// RedirectHandler serves the redirect path. It is a plain chi handler
// rather than a huma operation so the not-found response can be the fixed
// HTML page instead of a JSON error.
type RedirectHandler struct {
	resolver *shortlink.Resolver
	logger   *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(resolver *shortlink.Resolver, logger *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		resolver: resolver,
		logger:   logger,
	}
}

func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	alias := shortlink.Alias(chi.URLParam(r, "alias"))

	longURL, err := h.resolver.Resolve(r.Context(), alias, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			h.writeNotFound(w)

			return
		}

		h.logger.Error("redirect resolution failed",
			zap.String("alias", string(alias)),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	http.Redirect(w, r, longURL, http.StatusFound)
}

func (h *RedirectHandler) writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundHTML))
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
