package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayplan/tripmcp/pkg/geo"
	"github.com/wayplan/tripmcp/pkg/services"
)

// SearchMountainsTool returns a tool definition for finding mountain peaks
func SearchMountainsTool() mcp.Tool {
	return mcp.NewTool("search_mountains",
		mcp.WithDescription("Find mountain peaks near a location"),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("The latitude coordinate of the center point"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("The longitude coordinate of the center point"),
		),
		mcp.WithNumber("radius_m",
			mcp.Description("Search radius in meters"),
			mcp.DefaultNumber(services.DefaultPeaksRadiusM),
		),
	)
}

// handleSearchMountains implements the peak search
func (r *Registry) handleSearchMountains(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "search_mountains")

	latitude := mcp.ParseFloat64(req, "latitude", 0)
	longitude := mcp.ParseFloat64(req, "longitude", 0)
	radiusM := int(mcp.ParseFloat64(req, "radius_m", services.DefaultPeaksRadiusM))

	if !geo.ValidLat(latitude) {
		return ErrorResponse("Latitude must be between -90 and 90"), nil
	}
	if !geo.ValidLon(longitude) {
		return ErrorResponse("Longitude must be between -180 and 180"), nil
	}
	if radiusM <= 0 {
		return ErrorResponse("Radius must be greater than 0"), nil
	}

	result, err := r.svc.Peaks(ctx, services.PeaksInput{
		Latitude:  latitude,
		Longitude: longitude,
		RadiusM:   radiusM,
	})
	if err != nil {
		logger.Error("peak search failed", "error", err)
		return FailureResponse(err), nil
	}

	return JSONResult(result), nil
}
