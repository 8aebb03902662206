package mcpproxy

import (
	"context"
	"encoding/json"
)

// ToolCaller is the tool execution surface consumed by subagents.
// The production implementation is *Client; tests substitute fakes.
type ToolCaller interface {
	// CallTool runs a named tool on the given server and returns the raw
	// JSON result payload.
	CallTool(ctx context.Context, server, tool string, args map[string]interface{}) (json.RawMessage, error)
	// AvailableTools lists tools, optionally scoped to one server.
	AvailableTools(ctx context.Context, server string) ([]Tool, error)
}
