package models

import "time"

// TokenUsage is the accumulated token consumption of a subagent.
type TokenUsage struct {
	// PromptTokens is the number of input tokens consumed.
	PromptTokens int64 `json:"prompt_tokens"`
	// CompletionTokens is the number of output tokens produced.
	CompletionTokens int64 `json:"completion_tokens"`
	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int64 `json:"total_tokens"`
}

// Add accumulates usage from a single LLM call.
func (u *TokenUsage) Add(prompt, completion int64) {
	u.PromptTokens += prompt
	u.CompletionTokens += completion
	u.TotalTokens += prompt + completion
}

// SubagentResult is the output of one executed task.
// Results are never mutated after creation.
type SubagentResult struct {
	// TaskID references the task that produced this result.
	TaskID string `json:"task_id"`
	// TaskName is the display name of the task, carried for reporting.
	TaskName string `json:"task_name,omitempty"`
	// Domain is the task's domain, carried for reporting.
	Domain Domain `json:"domain,omitempty"`
	// Success reports whether the task completed without an uncaught error.
	Success bool `json:"success"`
	// Output is the final answer produced by the subagent.
	Output string `json:"output,omitempty"`
	// Error contains the failure message when Success is false.
	Error string `json:"error,omitempty"`
	// ToolsUsed lists the tool names actually invoked, in call order.
	ToolsUsed []string `json:"tools_used,omitempty"`
	// Iterations is the number of ReAct iterations executed.
	Iterations int `json:"iterations"`
	// Duration is the wall-clock execution time of the task.
	Duration time.Duration `json:"duration"`
	// Usage is the accumulated token consumption, if an LLM was involved.
	Usage TokenUsage `json:"usage"`
	// Reasoning is the ordered human-readable trace of what the subagent did.
	Reasoning []string `json:"reasoning,omitempty"`
}
