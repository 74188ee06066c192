// Package services implements the calls to the external geocoding, routing,
// and map-feature APIs. Each operation is a function from an explicit input
// type to an explicit result type; failures carry an enumerated kind so
// callers branch on the kind rather than on error identity.
package services

import (
	"fmt"
	"log/slog"

	"github.com/wayplan/tripmcp/pkg/upstream"
)

// FailureKind enumerates the ways an operation can fail.
type FailureKind string

const (
	// FailureInvalidInput means the caller's input did not validate; the
	// request never left the process.
	FailureInvalidInput FailureKind = "INVALID_INPUT"

	// FailureNotFound means the upstream service answered but had no result.
	FailureNotFound FailureKind = "NOT_FOUND"

	// FailureUpstream means the upstream service was unreachable or
	// returned an error.
	FailureUpstream FailureKind = "UPSTREAM_ERROR"
)

// Failure is the error type returned by every operation in this package.
type Failure struct {
	Kind       FailureKind // what class of failure this is
	Service    string      // the upstream service name, e.g. "nominatim"
	StatusCode int         // HTTP status from the upstream, when relevant
	Message    string      // human-readable description
	Guidance   string      // how the caller can recover
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s (%s %d): %s", f.Kind, f.Service, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s (%s): %s", f.Kind, f.Service, f.Message)
}

// Common guidance messages
const (
	guidanceGeocodeFormat  = "Try a more standard place name, or add city and country."
	guidanceUpstreamRetry  = "The service may be busy; try again in a few seconds."
	guidanceRouteNotFound  = "No route could be found between the points. Try locations with accessible roads."
	guidancePeaksRadius    = "Try a larger search radius or a different center point."
	guidanceCheckYourInput = "Correct the parameters and try again."
)

func invalidInput(service, message string) *Failure {
	return &Failure{
		Kind:     FailureInvalidInput,
		Service:  service,
		Message:  message,
		Guidance: guidanceCheckYourInput,
	}
}

func notFound(service, message, guidance string) *Failure {
	return &Failure{
		Kind:     FailureNotFound,
		Service:  service,
		Message:  message,
		Guidance: guidance,
	}
}

func upstreamFailure(service string, status int, message string) *Failure {
	return &Failure{
		Kind:       FailureUpstream,
		Service:    service,
		StatusCode: status,
		Message:    message,
		Guidance:   guidanceUpstreamRetry,
	}
}

// Config holds the upstream endpoints and credentials. Zero-value fields
// fall back to the public instances.
type Config struct {
	NominatimURL string
	OverpassURL  string
	ORSURL       string
	ORSAPIKey    string
}

// Client performs the external API operations.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Client, defaulting any unset endpoint to the public instance.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.NominatimURL == "" {
		cfg.NominatimURL = upstream.NominatimBaseURL
	}
	if cfg.OverpassURL == "" {
		cfg.OverpassURL = upstream.OverpassBaseURL
	}
	if cfg.ORSURL == "" {
		cfg.ORSURL = upstream.ORSBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, logger: logger}
}
