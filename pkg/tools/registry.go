// Package tools provides the MCP tool implementations for the trip
// planning service.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wayplan/tripmcp/pkg/chargers"
	"github.com/wayplan/tripmcp/pkg/services"
)

// Registry holds the dependencies shared by all tool handlers. The charger
// directory and the upstream client are constructed once at the composition
// root and injected here.
type Registry struct {
	logger *slog.Logger
	svc    *services.Client
	dir    *chargers.Directory
}

// NewRegistry creates a new MCP tool registry.
func NewRegistry(logger *slog.Logger, svc *services.Client, dir *chargers.Directory) *Registry {
	return &Registry{
		logger: logger,
		svc:    svc,
		dir:    dir,
	}
}

// ToolDefinition represents one MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all trip planning MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "geocode_location",
			Description: "Convert a place name or address to geographic coordinates",
			Tool:        GeocodeLocationTool(),
			Handler:     r.handleGeocodeLocation,
		},
		{
			Name:        "get_route",
			Description: "Calculate a driving route between two locations",
			Tool:        GetRouteTool(),
			Handler:     r.handleGetRoute,
		},
		{
			Name:        "search_mountains",
			Description: "Find mountain peaks near a location",
			Tool:        SearchMountainsTool(),
			Handler:     r.handleSearchMountains,
		},
		{
			Name:        "get_ev_chargers",
			Description: "Find EV charging stations within a radius of a location",
			Tool:        GetEVChargersTool(),
			Handler:     r.handleGetEVChargers,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
