package handlers

import "time"

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		LongURL     string     `doc:"The URL to shorten"                  example:"https://example.com/very/long/path" format:"uri"   json:"longUrl"`
		ShortAlias  string     `doc:"Optional custom alias"               example:"abc123"                             json:"shortAlias,omitempty" required:"false"`
		Topic       string     `doc:"Optional topic for grouping"         example:"acquisition"                        json:"topic,omitempty"      required:"false"`
		Description string     `doc:"Optional description"                json:"description,omitempty"                 required:"false"`
		ExpiresAt   *time.Time `doc:"Optional expiry; expired links stop resolving" json:"expiresAt,omitempty"         required:"false"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Body struct {
		ShortURL  string    `doc:"The full short URL" example:"http://localhost:8888/abc123" json:"shortUrl"`
		CreatedAt time.Time `doc:"Creation time"      json:"createdAt"`
	}
}
