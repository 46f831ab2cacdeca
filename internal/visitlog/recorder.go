package visitlog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder turns visit events into persisted entries. It runs on the
// consumer side, decoupled from the redirect that produced the event.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder creates a new visit recorder.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger,
	}
}

// HandleVisit persists one visit event. Missing fields are stored as the
// literal Unknown placeholder.
func (r *Recorder) HandleVisit(ctx context.Context, event *VisitEvent) error {
	entry := &Entry{
		ID:         uuid.NewString(),
		ShortURLID: event.ShortURLID,
		UserAgent:  orUnknown(event.UserAgent),
		IPAddress:  orUnknown(event.IPAddress),
		OSName:     orUnknown(event.OSName),
		DeviceType: orUnknown(event.DeviceType),
		Country:    orUnknown(event.Country),
		Region:     orUnknown(event.Region),
		City:       orUnknown(event.City),
		VisitedAt:  event.VisitedAt,
	}

	if err := r.store.SaveVisit(ctx, entry); err != nil {
		return err
	}

	r.logger.Debug("visit recorded",
		zap.String("short_url_id", entry.ShortURLID),
	)

	return nil
}

// HandleLinkCreated logs creation events. Creations are already durable in
// the store; the event stream only feeds diagnostics here.
func (r *Recorder) HandleLinkCreated(_ context.Context, event *LinkCreatedEvent) error {
	r.logger.Info("link created",
		zap.String("short_url_id", event.ShortURLID),
		zap.String("alias", event.Alias),
		zap.String("owner_id", event.OwnerID),
		zap.Time("created_at", event.CreatedAt),
	)

	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}

	return s
}
