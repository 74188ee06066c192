package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayplan/tripmcp/pkg/services"
)

// GeocodeLocationTool returns a tool definition for geocoding a place name
func GeocodeLocationTool() mcp.Tool {
	return mcp.NewTool("geocode_location",
		mcp.WithDescription("Convert a place name or address to geographic coordinates"),
		mcp.WithString("location_text",
			mcp.Required(),
			mcp.Description("The place name or address to look up, e.g. \"San Francisco, CA\""),
		),
	)
}

// handleGeocodeLocation implements the geocoding tool
func (r *Registry) handleGeocodeLocation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "geocode_location")

	locationText := mcp.ParseString(req, "location_text", "")
	if locationText == "" {
		return ErrorResponse("location_text must not be empty"), nil
	}

	result, err := r.svc.Geocode(ctx, services.GeocodeInput{LocationText: locationText})
	if err != nil {
		logger.Error("geocode failed", "error", err)
		return FailureResponse(err), nil
	}

	return JSONResult(result), nil
}
