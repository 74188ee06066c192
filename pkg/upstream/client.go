// Package upstream provides the shared HTTP client used to call the
// external geocoding, routing, and map-feature services.
package upstream

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent is the default User-Agent string. Nominatim's usage
	// policy requires an identifying User-Agent on every request.
	DefaultUserAgent = "tripmcp/0.1.0"

	// NominatimBaseURL is OSM's public geocoding service.
	NominatimBaseURL = "https://nominatim.openstreetmap.org"

	// OverpassBaseURL is the public Overpass API interpreter endpoint.
	OverpassBaseURL = "https://overpass-api.de/api/interpreter"

	// ORSBaseURL is the OpenRouteService API.
	ORSBaseURL = "https://api.openrouteservice.org"
)

var (
	// Global HTTP client with connection pooling
	httpClient *http.Client

	// Rate limiters for each service
	nominatimLimiter *rate.Limiter
	overpassLimiter  *rate.Limiter
	orsLimiter       *rate.Limiter

	// User agent string
	userAgent     string
	userAgentLock sync.RWMutex
)

func init() {
	httpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: 30 * time.Second,
	}

	initRateLimiters()
	SetUserAgent(DefaultUserAgent)
}

// initRateLimiters initializes the limiters to the published usage limits
// of the public instances.
func initRateLimiters() {
	// Nominatim: 1 request per second
	// https://operations.osmfoundation.org/policies/nominatim/
	nominatimLimiter = rate.NewLimiter(rate.Every(1*time.Second), 1)

	// Overpass: stay well under the public instance's load limits
	overpassLimiter = rate.NewLimiter(rate.Every(30*time.Second), 2)

	// OpenRouteService free tier: 40 requests per minute
	orsLimiter = rate.NewLimiter(rate.Every(1500*time.Millisecond), 5)
}

// UpdateNominatimRateLimits updates the Nominatim rate limiter
func UpdateNominatimRateLimits(rps float64, burst int) {
	nominatimLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// UpdateOverpassRateLimits updates the Overpass rate limiter
func UpdateOverpassRateLimits(rps float64, burst int) {
	overpassLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// UpdateORSRateLimits updates the OpenRouteService rate limiter
func UpdateORSRateLimits(rps float64, burst int) {
	orsLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// SetUserAgent sets the User-Agent string
func SetUserAgent(ua string) {
	userAgentLock.Lock()
	defer userAgentLock.Unlock()
	userAgent = ua
}

// GetUserAgent returns the current User-Agent string
func GetUserAgent() string {
	userAgentLock.RLock()
	defer userAgentLock.RUnlock()
	return userAgent
}

// hostFromURL extracts the host from a URL string
func hostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}

// waitForRateLimit waits for the appropriate rate limiter based on the
// request host. Requests to hosts other than the well-known public
// instances (self-hosted mirrors, test servers) are not throttled.
func waitForRateLimit(ctx context.Context, req *http.Request) error {
	switch req.URL.Host {
	case hostFromURL(NominatimBaseURL):
		return nominatimLimiter.Wait(ctx)
	case hostFromURL(OverpassBaseURL):
		return overpassLimiter.Wait(ctx)
	case hostFromURL(ORSBaseURL):
		return orsLimiter.Wait(ctx)
	default:
		return nil
	}
}

// DoRequest performs an HTTP request with the shared client, setting the
// User-Agent header and honoring the per-service rate limit.
func DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", GetUserAgent())

	if err := waitForRateLimit(ctx, req); err != nil {
		return nil, err
	}

	return httpClient.Do(req)
}
