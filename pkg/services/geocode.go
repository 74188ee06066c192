package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wayplan/tripmcp/pkg/obs"
	"github.com/wayplan/tripmcp/pkg/upstream"
)

// GeocodeInput is a free-form location description to resolve.
type GeocodeInput struct {
	LocationText string `json:"location_text"`
}

// GeocodeMeta carries secondary information from the geocoder.
type GeocodeMeta struct {
	Type       string  `json:"type,omitempty"`
	Importance float64 `json:"importance,omitempty"`
}

// GeocodeResult is the resolved coordinate for a location description.
type GeocodeResult struct {
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	LocationName string      `json:"location_name"`
	Meta         GeocodeMeta `json:"meta"`
}

// Geocode resolves a place description to a coordinate using Nominatim,
// keeping only the best match.
func (c *Client) Geocode(ctx context.Context, in GeocodeInput) (*GeocodeResult, error) {
	logger := c.logger.With("op", "geocode")

	query := strings.ToLower(strings.TrimSpace(in.LocationText))
	if query == "" {
		return nil, invalidInput("nominatim", "location text must not be empty")
	}

	reqURL, err := url.Parse(c.cfg.NominatimURL + "/search")
	if err != nil {
		return nil, upstreamFailure("nominatim", 0, "bad endpoint URL")
	}
	q := reqURL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, upstreamFailure("nominatim", 0, "failed to create request")
	}

	start := time.Now()
	resp, err := upstream.DoRequest(ctx, req)
	obs.ObserveUpstream("nominatim", time.Since(start).Seconds(), err != nil)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, upstreamFailure("nominatim", 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("geocoding service returned error", "status", resp.StatusCode)
		return nil, upstreamFailure("nominatim", resp.StatusCode, "geocoding service error")
	}

	var results []struct {
		DisplayName string  `json:"display_name"`
		Lat         string  `json:"lat"`
		Lon         string  `json:"lon"`
		Type        string  `json:"type"`
		Importance  float64 `json:"importance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		logger.Error("failed to decode response", "error", err)
		return nil, upstreamFailure("nominatim", 0, "failed to parse geocoding response")
	}

	if len(results) == 0 {
		return nil, notFound("nominatim", fmt.Sprintf("no results for %q", query), guidanceGeocodeFormat)
	}

	best := results[0]
	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, upstreamFailure("nominatim", 0, "malformed coordinates in response")
	}

	return &GeocodeResult{
		Latitude:     lat,
		Longitude:    lon,
		LocationName: best.DisplayName,
		Meta: GeocodeMeta{
			Type:       best.Type,
			Importance: best.Importance,
		},
	}, nil
}
