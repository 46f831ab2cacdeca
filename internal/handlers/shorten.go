package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortlink"
	"go.uber.org/zap"
)

// ShortenHandler handles short URL creation.
type ShortenHandler struct {
	service *shortlink.Service
	logger  *zap.Logger
}

// NewShortenHandler creates a new creation handler.
func NewShortenHandler(service *shortlink.Service, logger *zap.Logger) *ShortenHandler {
	return &ShortenHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ShortenHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	ownerID, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	meta := RequestMetaFromContext(ctx)

	created, err := h.service.Create(ctx, ownerID, shortlink.CreateInput{
		LongURL:     req.Body.LongURL,
		Alias:       shortlink.Alias(req.Body.ShortAlias),
		Topic:       req.Body.Topic,
		Description: req.Body.Description,
		ExpiresAt:   req.Body.ExpiresAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	})
	if err != nil {
		switch {
		case errors.Is(err, shortlink.ErrInvalidURL):
			return nil, huma.Error400BadRequest("longUrl must be a valid absolute URL")
		case errors.Is(err, shortlink.ErrInvalidAlias):
			return nil, huma.Error400BadRequest("shortAlias must be 1-32 URL-safe characters")
		case errors.Is(err, shortlink.ErrAliasInUse):
			return nil, huma.Error400BadRequest("shortAlias is already in use")
		case errors.Is(err, shortlink.ErrRateLimited):
			return nil, huma.Error429TooManyRequests(err.Error())
		default:
			h.logger.Error("failed to create short url",
				zap.String("owner_id", ownerID),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to create short url")
		}
	}

	resp := &ShortenResponse{}
	resp.Body.ShortURL = created.ShortURL
	resp.Body.CreatedAt = created.CreatedAt

	return resp, nil
}
