package visitlog

import "time"

const (
	// TopicVisitRecorded carries one event per resolved redirect.
	TopicVisitRecorded = "shortlink.visit.recorded"
	// TopicLinkCreated carries one event per created short URL.
	TopicLinkCreated = "shortlink.link.created"
)

// VisitEvent is published by the redirect path, fire-and-forget, and
// persisted by the consumer.
type VisitEvent struct {
	ShortURLID string    `json:"shortUrlId"`
	UserAgent  string    `json:"userAgent"`
	IPAddress  string    `json:"ipAddress"`
	OSName     string    `json:"osName,omitempty"`
	DeviceType string    `json:"deviceType,omitempty"`
	Country    string    `json:"country,omitempty"`
	Region     string    `json:"region,omitempty"`
	City       string    `json:"city,omitempty"`
	VisitedAt  time.Time `json:"visitedAt"`
}

// LinkCreatedEvent is published when a short URL is created.
type LinkCreatedEvent struct {
	ShortURLID string    `json:"shortUrlId"`
	Alias      string    `json:"alias"`
	LongURL    string    `json:"longUrl"`
	OwnerID    string    `json:"ownerId"`
	Topic      string    `json:"topic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
}
