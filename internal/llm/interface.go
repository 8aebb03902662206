package llm

import "context"

// Completer is the model invocation surface consumed by subagents and the
// synthesizer. The production implementation is *Client; tests substitute
// fakes that script responses.
type Completer interface {
	// CreateCompletion sends one request and returns the model's response.
	CreateCompletion(ctx context.Context, req CompletionRequest) (*Completion, error)
}
