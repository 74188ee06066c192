package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayplan/tripmcp/pkg/geo"
	"github.com/wayplan/tripmcp/pkg/services"
)

// GetRouteTool returns a tool definition for route calculation
func GetRouteTool() mcp.Tool {
	return mcp.NewTool("get_route",
		mcp.WithDescription("Calculate a driving route between two locations, with distance, duration, ETA and turn-by-turn steps"),
		mcp.WithNumber("start_lat",
			mcp.Required(),
			mcp.Description("Starting point latitude"),
		),
		mcp.WithNumber("start_lon",
			mcp.Required(),
			mcp.Description("Starting point longitude"),
		),
		mcp.WithNumber("end_lat",
			mcp.Required(),
			mcp.Description("Destination latitude"),
		),
		mcp.WithNumber("end_lon",
			mcp.Required(),
			mcp.Description("Destination longitude"),
		),
		mcp.WithString("avoid",
			mcp.Description("Comma-separated route features to avoid (ferries, tollways, highways)"),
			mcp.DefaultString(""),
		),
	)
}

// handleGetRoute implements route calculation
func (r *Registry) handleGetRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "get_route")

	startLat := mcp.ParseFloat64(req, "start_lat", 0)
	startLon := mcp.ParseFloat64(req, "start_lon", 0)
	endLat := mcp.ParseFloat64(req, "end_lat", 0)
	endLon := mcp.ParseFloat64(req, "end_lon", 0)
	avoid := mcp.ParseString(req, "avoid", "")

	if !geo.ValidLat(startLat) || !geo.ValidLat(endLat) {
		return ErrorResponse("Latitude must be between -90 and 90"), nil
	}
	if !geo.ValidLon(startLon) || !geo.ValidLon(endLon) {
		return ErrorResponse("Longitude must be between -180 and 180"), nil
	}

	var avoidFeatures []string
	for _, f := range strings.Split(avoid, ",") {
		if f = strings.TrimSpace(f); f != "" {
			avoidFeatures = append(avoidFeatures, f)
		}
	}

	result, err := r.svc.Route(ctx, services.RouteInput{
		Coordinates: []geo.Location{
			{Latitude: startLat, Longitude: startLon},
			{Latitude: endLat, Longitude: endLon},
		},
		AvoidFeatures: avoidFeatures,
	})
	if err != nil {
		logger.Error("route failed", "error", err)
		return FailureResponse(err), nil
	}

	return JSONResult(result), nil
}
