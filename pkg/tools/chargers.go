package tools

import (
	"context"
	"errors"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayplan/tripmcp/pkg/chargers"
)

// DefaultChargerRadiusKm is the search radius used when the caller does
// not supply one.
const DefaultChargerRadiusKm = 50

// ChargerHit is one charging station in a tool result.
type ChargerHit struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lon"`
	DistanceKm float64  `json:"distance_km"`
	Status     string   `json:"status,omitempty"`
	Network    string   `json:"network,omitempty"`
	Connectors []string `json:"connectors,omitempty"`
	PowerKW    float64  `json:"power_kw,omitempty"`
}

// GetEVChargersTool returns a tool definition for finding EV charging stations
func GetEVChargersTool() mcp.Tool {
	return mcp.NewTool("get_ev_chargers",
		mcp.WithDescription("Find EV charging stations within a radius of a location, sorted by distance"),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("The latitude coordinate of the center point"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("The longitude coordinate of the center point"),
		),
		mcp.WithNumber("radius_km",
			mcp.Description("Search radius in kilometers"),
			mcp.DefaultNumber(DefaultChargerRadiusKm),
		),
	)
}

// handleGetEVChargers answers charger lookups from the bundled station
// directory; no external service is involved.
func (r *Registry) handleGetEVChargers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "get_ev_chargers")

	latitude := mcp.ParseFloat64(req, "latitude", 0)
	longitude := mcp.ParseFloat64(req, "longitude", 0)
	radiusKm := mcp.ParseFloat64(req, "radius_km", DefaultChargerRadiusKm)

	results, err := r.dir.Nearby(latitude, longitude, radiusKm)
	if err != nil {
		switch {
		case errors.Is(err, chargers.ErrInvalidCoordinate):
			return ErrorResponse("Latitude must be between -90 and 90 and longitude between -180 and 180"), nil
		case errors.Is(err, chargers.ErrInvalidRadius):
			return ErrorResponse("Radius must be a finite number of kilometers"), nil
		default:
			logger.Error("charger lookup failed", "error", err)
			return ErrorResponse("Charger lookup failed"), nil
		}
	}

	hits := make([]ChargerHit, len(results))
	for i, res := range results {
		hits[i] = ChargerHit{
			ID:         res.ID,
			Name:       res.Name,
			Latitude:   res.Location.Latitude,
			Longitude:  res.Location.Longitude,
			DistanceKm: math.Round(res.DistanceKm*100) / 100,
			Status:     res.Status,
			Network:    res.Network,
			Connectors: res.Connectors,
			PowerKW:    res.PowerKW,
		}
	}

	output := struct {
		ChargingStations []ChargerHit `json:"charging_stations"`
	}{
		ChargingStations: hits,
	}
	return JSONResult(output), nil
}
