package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GeoData holds the location fields derived from the caller's IP. Zero
// values mean the lookup failed or was skipped; the visit logger turns
// them into "Unknown".
type GeoData struct {
	Country string
	Region  string
	City    string
}

const defaultGeoBaseURL = "https://ipapi.co"

// GeoClient looks up request geolocation by IP. Lookups are best-effort:
// every failure degrades to zero GeoData and is only logged.
type GeoClient struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewGeoClient creates a geolocation client with a short timeout so a slow
// provider cannot delay visit logging noticeably.
func NewGeoClient(logger *zap.Logger) *GeoClient {
	return &GeoClient{
		http:    &http.Client{Timeout: 2 * time.Second},
		baseURL: defaultGeoBaseURL,
		logger:  logger,
	}
}

// NewGeoClientWithBaseURL creates a geolocation client against a specific
// endpoint. Used by tests.
func NewGeoClientWithBaseURL(baseURL string, logger *zap.Logger) *GeoClient {
	c := NewGeoClient(logger)
	c.baseURL = baseURL

	return c
}

// NormalizeIP maps loopback addresses to a fixed placeholder so local
// traffic produces a stable, lookupable value.
func NormalizeIP(ip string) string {
	if ip == "::1" {
		return "127.0.0.1"
	}

	return ip
}

// Lookup resolves GeoData for an IP. Invalid IPs, transport failures, and
// non-200 responses all degrade to zero GeoData.
func (c *GeoClient) Lookup(ctx context.Context, ip string) GeoData {
	ip = NormalizeIP(ip)

	if net.ParseIP(ip) == nil {
		return GeoData{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json/", c.baseURL, ip), nil)
	if err != nil {
		return GeoData{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("geolocation lookup failed", zap.String("ip", ip), zap.Error(err))

		return GeoData{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("geolocation lookup rejected",
			zap.String("ip", ip),
			zap.Int("status", resp.StatusCode),
		)

		return GeoData{}
	}

	var payload struct {
		Country string `json:"country_name"`
		Region  string `json:"region"`
		City    string `json:"city"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Debug("geolocation response invalid", zap.String("ip", ip), zap.Error(err))

		return GeoData{}
	}

	return GeoData{
		Country: payload.Country,
		Region:  payload.Region,
		City:    payload.City,
	}
}
