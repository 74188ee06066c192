package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wayplan/tripmcp/pkg/services"
)

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// FailureResponse formats a service failure with its recovery guidance so
// an agent can correct the request on its own.
func FailureResponse(err error) *mcp.CallToolResult {
	var f *services.Failure
	if errors.As(err, &f) {
		if f.Guidance != "" {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %s\n\nGuidance: %s", f.Message, f.Guidance))
		}
		return mcp.NewToolResultError("Error: " + f.Message)
	}
	return mcp.NewToolResultError(err.Error())
}

// JSONResult marshals v into a text tool result.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return ErrorResponse("Failed to generate result")
	}
	return mcp.NewToolResultText(string(data))
}
