package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/wayplan/tripmcp/pkg/geo"
	"github.com/wayplan/tripmcp/pkg/obs"
	"github.com/wayplan/tripmcp/pkg/upstream"
)

// maxRouteSteps is the cap on turn-by-turn instructions in a result.
// Longer routes keep the first and last five steps.
const maxRouteSteps = 10

// RouteInput describes a driving route request through two or more points.
type RouteInput struct {
	Coordinates   []geo.Location `json:"coordinates"`
	AvoidFeatures []string       `json:"avoid_prefs,omitempty"`
}

// RouteResult is the reshaped routing answer.
type RouteResult struct {
	DistanceKm       float64      `json:"distance_km"`
	DurationMin      float64      `json:"duration_min"`
	EstimatedArrival string       `json:"estimated_arrival"`
	Steps            []string     `json:"steps"`
	Start            geo.Location `json:"start"`
	End              geo.Location `json:"end"`
}

// orsDirectionsResponse is the subset of the OpenRouteService GeoJSON
// response this service consumes.
type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Instruction string  `json:"instruction"`
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// Route computes a driving route through the given coordinates using
// OpenRouteService and reshapes the answer into distance, duration, an
// estimated arrival time, and a bounded list of instructions.
func (c *Client) Route(ctx context.Context, in RouteInput) (*RouteResult, error) {
	logger := c.logger.With("op", "route")

	if len(in.Coordinates) < 2 {
		return nil, invalidInput("ors", "at least two coordinates are required")
	}
	for i, loc := range in.Coordinates {
		if !geo.ValidCoordinate(loc.Latitude, loc.Longitude) {
			return nil, invalidInput("ors", fmt.Sprintf("coordinate %d is out of range", i))
		}
	}
	if c.cfg.ORSAPIKey == "" {
		return nil, &Failure{
			Kind:     FailureUpstream,
			Service:  "ors",
			Message:  "no OpenRouteService API key configured",
			Guidance: "Set the ORS API key in the configuration file or the ORS_API_KEY environment variable.",
		}
	}

	// ORS expects lon,lat pairs
	coords := make([][]float64, len(in.Coordinates))
	for i, loc := range in.Coordinates {
		coords[i] = []float64{loc.Longitude, loc.Latitude}
	}
	payload := map[string]any{
		"coordinates":  coords,
		"instructions": true,
	}
	if len(in.AvoidFeatures) > 0 {
		payload["options"] = map[string]any{"avoid_features": in.AvoidFeatures}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, upstreamFailure("ors", 0, "failed to encode request")
	}

	reqURL := c.cfg.ORSURL + "/v2/directions/driving-car/geojson"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, upstreamFailure("ors", 0, "failed to create request")
	}
	req.Header.Set("Authorization", c.cfg.ORSAPIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := upstream.DoRequest(ctx, req)
	obs.ObserveUpstream("ors", time.Since(start).Seconds(), err != nil)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, upstreamFailure("ors", 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("routing service returned error", "status", resp.StatusCode, "body", string(detail))
		return nil, upstreamFailure("ors", resp.StatusCode, "routing service error")
	}

	var orsResp orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&orsResp); err != nil {
		logger.Error("failed to decode response", "error", err)
		return nil, upstreamFailure("ors", 0, "failed to parse routing response")
	}
	if len(orsResp.Features) == 0 {
		return nil, notFound("ors", "no route found", guidanceRouteNotFound)
	}

	props := orsResp.Features[0].Properties
	summary := props.Summary

	var steps []string
	if len(props.Segments) > 0 {
		raw := props.Segments[0].Steps
		kept := raw
		if len(raw) > maxRouteSteps {
			kept = append(raw[:5:5], raw[len(raw)-5:]...)
		}
		for _, s := range kept {
			steps = append(steps, s.Instruction)
		}
	}

	eta := time.Now().UTC().Add(time.Duration(summary.Duration * float64(time.Second)))

	return &RouteResult{
		DistanceKm:       round2(summary.Distance / 1000),
		DurationMin:      round2(summary.Duration / 60),
		EstimatedArrival: eta.Format("2006-01-02 15:04 UTC"),
		Steps:            steps,
		Start:            in.Coordinates[0],
		End:              in.Coordinates[len(in.Coordinates)-1],
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
