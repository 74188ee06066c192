// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTripPrompts registers all trip-planning prompts with the MCP server
func RegisterTripPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("trip_planning",
		mcp.WithPromptDescription("Instructions for combining the trip planning tools"),
	), TripPlanningPromptHandler)

	s.AddPrompt(mcp.NewPrompt("ev_charger_examples",
		mcp.WithPromptDescription("Examples of properly formatted EV charger lookups"),
	), EVChargerExamplesHandler)
}

// TripPlanningPromptHandler returns the main prompt for the trip planning tools
func TripPlanningPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemPrompt := `You have access to trip planning tools: geocoding, driving routes,
mountain peak search, and EV charger lookup. When using these tools:

1. Resolve place names to coordinates with geocode_location before calling the
   coordinate-based tools
2. Pass decimal-degree coordinates within valid ranges (latitude -90..90,
   longitude -180..180)
3. get_route returns distance in kilometers, duration in minutes, an estimated
   arrival time in UTC, and a bounded list of turn-by-turn steps
4. get_ev_chargers searches a fixed station directory; radius_km controls the
   search circle and results come back sorted by distance
5. If a tool reports an error, read the guidance in the error message and retry
   with corrected parameters

TYPICAL FLOW FOR "plan a drive from A to B with charging stops":
1. geocode_location for A, then for B
2. get_route between the two coordinates
3. get_ev_chargers around points along the route`

	return mcp.NewGetPromptResult(
		"Trip Planning Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(systemPrompt),
			),
		},
	), nil
}

// EVChargerExamplesHandler returns examples for get_ev_chargers
func EVChargerExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examplesPrompt := `EXAMPLES OF EFFECTIVE GET_EV_CHARGERS USAGE:

User: "Where can I charge near downtown Seattle?"
AI: *uses get_ev_chargers with latitude: 47.6062, longitude: -122.3321, radius_km: 25*

User: "Any fast chargers on the way from Portland to Salem?"
AI: *uses get_route for the two cities, then get_ev_chargers around midpoints
    of the route with radius_km: 20*

NOTES:
1. distance_km in each result is the great-circle distance from the query point
2. A radius of 0 only returns stations at exactly the query coordinate
3. Stations with status other than "operational" may be unavailable`

	return mcp.NewGetPromptResult(
		"EV Charger Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examplesPrompt),
			),
		},
	), nil
}
