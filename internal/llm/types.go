package llm

import "encoding/json"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message authored by the user (or tool results).
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the model.
	RoleAssistant Role = "assistant"
)

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	// ID uniquely identifies this call within the conversation.
	ID string `json:"id"`
	// Name is the tool to invoke.
	Name string `json:"name"`
	// Arguments is the JSON-encoded argument object.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult carries the outcome of a tool call back to the model.
type ToolResult struct {
	// CallID references the ToolCall this result answers.
	CallID string `json:"call_id"`
	// Content is the serialized tool output, or a serialized error.
	Content string `json:"content"`
	// IsError marks the content as an error payload. Errors are ordinary
	// conversation content; the model decides how to proceed.
	IsError bool `json:"is_error,omitempty"`
}

// Message is one turn of a conversation.
// Exactly one of Content, ToolCalls, or ToolResults is typically set.
type Message struct {
	// Role is the message author.
	Role Role `json:"role"`
	// Content is the plain-text body.
	Content string `json:"content,omitempty"`
	// ToolCalls holds tool invocations requested in an assistant turn.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolResults holds tool outputs returned in a user turn.
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// ToolSchema describes one tool the model may call.
type ToolSchema struct {
	// Name is the tool identifier.
	Name string `json:"name"`
	// Description tells the model what the tool does.
	Description string `json:"description"`
	// Properties is the JSON-schema properties object for the arguments.
	Properties map[string]interface{} `json:"properties,omitempty"`
	// Required lists the mandatory argument names.
	Required []string `json:"required,omitempty"`
}

// StopReason reports why the model stopped generating.
type StopReason string

const (
	// StopEndTurn means the model produced a final answer.
	StopEndTurn StopReason = "end_turn"
	// StopToolUse means the model requested tool calls.
	StopToolUse StopReason = "tool_use"
	// StopMaxTokens means generation hit the token limit.
	StopMaxTokens StopReason = "max_tokens"
)

// CompletionRequest is a single model invocation.
type CompletionRequest struct {
	// System is the system prompt.
	System string `json:"system,omitempty"`
	// Messages is the running conversation.
	Messages []Message `json:"messages"`
	// Tools is the schema of tools the model may call. Empty disables tools.
	Tools []ToolSchema `json:"tools,omitempty"`
	// MaxTokens bounds the response length. Zero uses the client default.
	MaxTokens int64 `json:"max_tokens,omitempty"`
	// Temperature adjusts sampling. Nil uses the provider default.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Usage is the token consumption of one completion.
type Usage struct {
	// InputTokens counts prompt tokens.
	InputTokens int64 `json:"input_tokens"`
	// OutputTokens counts generated tokens.
	OutputTokens int64 `json:"output_tokens"`
}

// Completion is the model's response to a CompletionRequest.
type Completion struct {
	// Content is the concatenated text output.
	Content string `json:"content"`
	// ToolCalls holds requested tool invocations, in order.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// StopReason reports why generation ended.
	StopReason StopReason `json:"stop_reason"`
	// Usage is the token consumption of this call.
	Usage Usage `json:"usage"`
}

// HasToolCalls returns true if the model requested at least one tool call.
func (c *Completion) HasToolCalls() bool {
	return len(c.ToolCalls) > 0
}
