package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the JSON API operations. The authenticate
// middleware is attached only to operations that need an owner.
func RegisterAPIRoutes(api huma.API, shorten *ShortenHandler, authenticate func(huma.Context, func(huma.Context))) {
	huma.Register(api, huma.Operation{
		OperationID: "create-short-url",
		Method:      http.MethodPost,
		Path:        "/api/shorten",
		Summary:     "Create short URL",
		Description: "Registers a long URL under a custom or generated alias. Creation is rate limited per owner.",
		Tags:        []string{"URLs"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{authenticate},
	}, shorten.Shorten)
}

// RegisterRedirectRoute mounts the redirect handler on the router root,
// outside the API, so unknown aliases get the HTML error page.
func RegisterRedirectRoute(router chi.Router, redirect *RedirectHandler) {
	router.Get("/{alias}", redirect.Redirect)
}
