package shortlink

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/enrich"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/visitlog"
	"go.uber.org/zap"
)

// Visit dispatch runs detached from the request, with its own deadline.
const visitDispatchTimeout = 5 * time.Second

// Resolver answers the redirect path: alias to long URL, with a
// fire-and-forget visit record.
type Resolver struct {
	repo         Repository
	geo          *enrich.GeoClient
	publishVisit messaging.Publish[visitlog.VisitEvent]
	logger       *zap.Logger
	now          func() time.Time
	inflight     sync.WaitGroup
}

// NewResolver creates the redirect resolver.
func NewResolver(
	repo Repository,
	geo *enrich.GeoClient,
	publishVisit messaging.Publish[visitlog.VisitEvent],
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		repo:         repo,
		geo:          geo,
		publishVisit: publishVisit,
		logger:       logger,
		now:          time.Now,
	}
}

// Resolve returns the long URL for an alias. Known aliases dispatch a visit
// event on a detached goroutine; the caller never waits on enrichment or
// publishing, and their failures never surface here. Unknown aliases return
// ErrNotFound and record nothing.
func (r *Resolver) Resolve(ctx context.Context, alias Alias, clientIP, userAgent string) (string, error) {
	resolution, err := r.repo.Resolve(ctx, alias)
	if err != nil {
		return "", err
	}

	// Deliberately not tied to the request context: a cancelled redirect
	// still gets its visit logged, best-effort.
	r.inflight.Add(1)

	go func() {
		defer r.inflight.Done()
		r.recordVisit(resolution.ID, clientIP, userAgent)
	}()

	return resolution.LongURL, nil
}

func (r *Resolver) recordVisit(shortURLID, clientIP, userAgent string) {
	ctx, cancel := context.WithTimeout(context.Background(), visitDispatchTimeout)
	defer cancel()

	agent := enrich.ParseUserAgent(userAgent)
	geo := r.geo.Lookup(ctx, clientIP)

	event := &visitlog.VisitEvent{
		ShortURLID: shortURLID,
		UserAgent:  userAgent,
		IPAddress:  enrich.NormalizeIP(clientIP),
		OSName:     agent.OS,
		DeviceType: agent.Device,
		Country:    geo.Country,
		Region:     geo.Region,
		City:       geo.City,
		VisitedAt:  r.now(),
	}

	if err := r.publishVisit(event); err != nil {
		r.logger.Warn("failed to publish visit event",
			zap.String("short_url_id", shortURLID),
			zap.Error(err),
		)
	}
}

// Wait blocks until in-flight visit dispatches finish. Called on shutdown;
// dispatches still running at process exit are dropped, which is acceptable
// for best-effort logging.
func (r *Resolver) Wait() {
	r.inflight.Wait()
}

// Shutdown waits for in-flight visit dispatches.
func (r *Resolver) Shutdown() error {
	r.Wait()

	return nil
}
