package shortlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/visitlog"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Random aliases are high-entropy but not provably unique, so generation
// retries a bounded number of times on collision.
const aliasRetries = 2

// CreateInput is the creation request after transport decoding.
type CreateInput struct {
	LongURL     string
	Alias       Alias
	Topic       string
	Description string
	ExpiresAt   *time.Time

	// Request metadata carried into the creation event.
	ClientIP  string
	UserAgent string
}

// Created is the creation result returned to the caller.
type Created struct {
	ShortURL  string
	CreatedAt time.Time
}

// Service implements the short URL creation flow: validate, rate limit,
// allocate an alias, insert.
type Service struct {
	repo           Repository
	limiter        ratelimit.Limiter
	generate       Generator
	baseURL        string
	publishCreated messaging.Publish[visitlog.LinkCreatedEvent]
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates the creation service.
func NewService(
	repo Repository,
	limiter ratelimit.Limiter,
	generate Generator,
	baseURL string,
	publishCreated messaging.Publish[visitlog.LinkCreatedEvent],
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:           repo,
		limiter:        limiter,
		generate:       generate,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		logger:         logger,
		now:            time.Now,
	}
}

// Create registers a long URL under a custom or generated alias.
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*Created, error) {
	if !validAbsoluteURL(input.LongURL) {
		return nil, ErrInvalidURL
	}

	decision, err := s.limiter.Allow(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}

	if !decision.Allowed {
		return nil, fmt.Errorf("%w: window resets at %s",
			ErrRateLimited, decision.WindowEnd.UTC().Format(time.RFC3339))
	}

	record := &ShortURL{
		Alias:       input.Alias,
		LongURL:     input.LongURL,
		OwnerID:     ownerID,
		Topic:       input.Topic,
		Description: input.Description,
		CreatedAt:   s.now(),
		ExpiresAt:   input.ExpiresAt,
	}

	if input.Alias != "" {
		if !ValidAlias(input.Alias) {
			return nil, ErrInvalidAlias
		}

		taken, err := s.repo.AliasExists(ctx, input.Alias)
		if err != nil {
			return nil, fmt.Errorf("check alias: %w", err)
		}

		if taken {
			return nil, ErrAliasInUse
		}

		// A concurrent creation can still win the alias between the check
		// and the insert; Save reports that as ErrAliasInUse.
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, err
		}
	} else if err := s.saveWithGeneratedAlias(ctx, record); err != nil {
		return nil, err
	}

	event := &visitlog.LinkCreatedEvent{
		ShortURLID: record.ID,
		Alias:      string(record.Alias),
		LongURL:    record.LongURL,
		OwnerID:    record.OwnerID,
		Topic:      record.Topic,
		CreatedAt:  record.CreatedAt,
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
	}

	if err := s.publishCreated(event); err != nil {
		s.logger.Error("failed to publish creation event",
			zap.String("alias", event.Alias),
			zap.Error(err),
		)
	}

	return &Created{
		ShortURL:  s.baseURL + "/" + string(record.Alias),
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *Service) saveWithGeneratedAlias(ctx context.Context, record *ShortURL) error {
	backoff := retry.WithMaxRetries(aliasRetries, retry.NewConstant(time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		record.Alias = Alias(s.generate())

		err := s.repo.Save(ctx, record)
		if errors.Is(err, ErrAliasInUse) {
			s.logger.Warn("generated alias collided, retrying",
				zap.String("alias", string(record.Alias)),
			)

			return retry.RetryableError(err)
		}

		return err
	})
}

func validAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
