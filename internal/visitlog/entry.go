package visitlog

import (
	"context"
	"time"
)

// Unknown is the placeholder stored for any enrichment field the redirect
// path could not determine. Downstream aggregation never sees empty values.
const Unknown = "Unknown"

// Entry is one append-only visit log record.
type Entry struct {
	ID         string
	ShortURLID string
	UserAgent  string
	IPAddress  string
	OSName     string
	DeviceType string
	Country    string
	Region     string
	City       string
	VisitedAt  time.Time
}

// Store persists visit log entries.
type Store interface {
	SaveVisit(ctx context.Context, entry *Entry) error
}
