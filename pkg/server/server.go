// Package server provides the MCP server for the trip planning service.
package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/wayplan/tripmcp/pkg/chargers"
	"github.com/wayplan/tripmcp/pkg/services"
	"github.com/wayplan/tripmcp/pkg/tools"
	"github.com/wayplan/tripmcp/pkg/tools/prompts"
)

const (
	// ServerName is the name of the MCP server
	ServerName = "trip-planner-mcp"

	// ServerVersion is the version of the MCP server
	ServerVersion = "0.1.0"
)

// Server encapsulates the MCP server with the trip planning tools.
type Server struct {
	srv *server.MCPServer
}

// NewServer creates a trip planning MCP server with all tools registered.
// The charger directory and the upstream client come from the caller; the
// server itself owns no state.
func NewServer(logger *slog.Logger, svc *services.Client, dir *chargers.Directory) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing trip planning MCP server",
		"name", ServerName,
		"version", ServerVersion)

	srv := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	registry := tools.NewRegistry(logger, svc, dir)
	registry.RegisterTools(srv)
	prompts.RegisterTripPrompts(srv)

	return &Server{srv: srv}, nil
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}
