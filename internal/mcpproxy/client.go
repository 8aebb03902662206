// Package mcpproxy provides an HTTP client for the MCP proxy service.
// The proxy hosts the actual MCP servers; Conductor only asks it to run
// named tools and to enumerate what is available.
package mcpproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// defaultTimeout bounds a single proxy call. Long-running tools are expected;
// the orchestrator applies its own per-task timeouts on top.
const defaultTimeout = 120 * time.Second

// Client talks to the MCP proxy over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ClientConfig contains configuration for creating a proxy client.
type ClientConfig struct {
	// BaseURL is the proxy root, e.g. "http://localhost:8080".
	BaseURL string
	// APIKey is the optional bearer token for service-to-service auth.
	APIKey string
	// Timeout overrides the default per-call HTTP timeout.
	Timeout time.Duration
}

// NewClient creates a new MCP proxy client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("MCP proxy base URL is not configured")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// toolCallRequest is the body of POST /mcp/tool.
type toolCallRequest struct {
	Server    string                 `json:"server,omitempty"`
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
	ID        string                 `json:"id"`
}

// RPCError is an error returned by the proxy or the backing MCP server.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

// toolCallResponse is the body returned by POST /mcp/tool.
type toolCallResponse struct {
	Result        json.RawMessage `json:"result,omitempty"`
	Error         *RPCError       `json:"error,omitempty"`
	ID            string          `json:"id"`
	Server        string          `json:"server,omitempty"`
	ExecutionTime float64         `json:"execution_time,omitempty"`
}

// Tool describes one tool exposed by a server behind the proxy.
type Tool struct {
	// Server is the MCP server hosting the tool.
	Server string `json:"server"`
	// Name is the tool identifier.
	Name string `json:"name"`
	// Description tells callers what the tool does.
	Description string `json:"description,omitempty"`
	// InputSchema is the JSON schema of the tool's arguments.
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// toolsResponse is the body returned by GET /tools.
type toolsResponse struct {
	Tools      []Tool `json:"tools"`
	TotalCount int    `json:"total_count"`
}

// Health is the proxy's health report.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Servers struct {
		Total   int `json:"total"`
		Running int `json:"running"`
	} `json:"servers"`
}

// CallTool runs a named tool on the given server via the proxy and returns
// the raw JSON result payload. Server may be empty; the proxy then resolves
// the owning server from the tool name.
func (c *Client) CallTool(ctx context.Context, server, tool string, args map[string]interface{}) (json.RawMessage, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	body := toolCallRequest{
		Server:    server,
		Tool:      tool,
		Arguments: args,
		ID:        uuid.New().String()[:8],
	}

	var resp toolCallResponse
	if err := c.post(ctx, "/mcp/tool", body, &resp); err != nil {
		return nil, fmt.Errorf("tools/call %s: %w", tool, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("tools/call %s: %w", tool, resp.Error)
	}
	return resp.Result, nil
}

// AvailableTools lists tools across all servers, or for one server when the
// server argument is non-empty.
func (c *Client) AvailableTools(ctx context.Context, server string) ([]Tool, error) {
	path := "/tools"
	if server != "" {
		path = "/servers/" + server + "/tools"
	}

	var resp toolsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	// Per-server responses omit the server field on each tool.
	if server != "" {
		for i := range resp.Tools {
			if resp.Tools[i].Server == "" {
				resp.Tools[i].Server = server
			}
		}
	}
	return resp.Tools, nil
}

// CheckHealth queries the proxy health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.get(ctx, "/health", &health); err != nil {
		return nil, fmt.Errorf("proxy health: %w", err)
	}
	return &health, nil
}

// post sends a JSON body and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.do(req, out)
}

// get fetches a path and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	return c.do(req, out)
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("proxy returned %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
