package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wayplan/tripmcp/pkg/geo"
	"github.com/wayplan/tripmcp/pkg/obs"
	"github.com/wayplan/tripmcp/pkg/upstream"
)

const (
	// DefaultPeaksRadiusM is the search radius used when the caller does
	// not supply one.
	DefaultPeaksRadiusM = 25000

	// maxPeaks caps how many peaks a result carries.
	maxPeaks = 3

	// unnamedPeak is the display name for peaks without a name tag.
	unnamedPeak = "Unnamed Peak"
)

// PeaksInput describes a mountain-peak search around a point.
type PeaksInput struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	RadiusM   int     `json:"radius_m"`
}

// Peak is one mountain peak found near the query point.
type Peak struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// PeaksResult holds the peaks closest to the query point.
type PeaksResult struct {
	Peaks []Peak `json:"peaks"`
}

// Peaks queries Overpass for natural=peak nodes around a coordinate.
func (c *Client) Peaks(ctx context.Context, in PeaksInput) (*PeaksResult, error) {
	logger := c.logger.With("op", "peaks")

	if !geo.ValidCoordinate(in.Latitude, in.Longitude) {
		return nil, invalidInput("overpass", "latitude or longitude out of range")
	}
	radius := in.RadiusM
	if radius == 0 {
		radius = DefaultPeaksRadiusM
	}
	if radius < 0 {
		return nil, invalidInput("overpass", "radius must be positive")
	}

	query := fmt.Sprintf(`[out:json];node["natural"="peak"](around:%d,%f,%f);out;`,
		radius, in.Latitude, in.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OverpassURL,
		strings.NewReader("data="+url.QueryEscape(query)))
	if err != nil {
		return nil, upstreamFailure("overpass", 0, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := upstream.DoRequest(ctx, req)
	obs.ObserveUpstream("overpass", time.Since(start).Seconds(), err != nil)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, upstreamFailure("overpass", 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("feature service returned error", "status", resp.StatusCode)
		return nil, upstreamFailure("overpass", resp.StatusCode, "feature service error")
	}

	var overpassResp struct {
		Elements []struct {
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		logger.Error("failed to decode response", "error", err)
		return nil, upstreamFailure("overpass", 0, "failed to parse feature response")
	}

	peaks := make([]Peak, 0, maxPeaks)
	for _, el := range overpassResp.Elements {
		if el.Lat == 0 && el.Lon == 0 {
			continue
		}
		name := el.Tags["name"]
		if name == "" {
			name = unnamedPeak
		}
		peaks = append(peaks, Peak{Name: name, Latitude: el.Lat, Longitude: el.Lon})
		if len(peaks) == maxPeaks {
			break
		}
	}

	if len(peaks) == 0 {
		return nil, notFound("overpass", "no peaks found in the search area", guidancePeaksRadius)
	}

	return &PeaksResult{Peaks: peaks}, nil
}
