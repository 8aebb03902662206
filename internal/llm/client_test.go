package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err == nil {
		t.Fatal("NewClient should fail when no model is configured")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := NewClient(ClientConfig{Model: "claude-sonnet-4-5-20250929"})
	if err == nil {
		t.Fatal("NewClient should fail without an API key")
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	tests := []struct {
		model anthropic.Model
		want  string
	}{
		{anthropic.ModelClaudeSonnet4_5_20250929, "us.anthropic.claude-sonnet-4-5-20250929-v1:0"},
		{anthropic.ModelClaude3_5Haiku20241022, "us.anthropic.claude-3-5-haiku-20241022-v1:0"},
		// Already in Bedrock format: unchanged.
		{anthropic.Model("us.anthropic.claude-sonnet-4-5-20250929-v1:0"), "us.anthropic.claude-sonnet-4-5-20250929-v1:0"},
		// Unknown model: passed through as-is.
		{anthropic.Model("custom-model"), "custom-model"},
	}

	for _, tt := range tests {
		if got := translateModelForBedrock(tt.model); string(got) != tt.want {
			t.Errorf("translateModelForBedrock(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(1000, 500)
	tracker.Add(2000, 1000)

	in, out := tracker.Total()
	if in != 3000 || out != 1500 {
		t.Errorf("Total() = (%d, %d), want (3000, 1500)", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", tracker.Calls())
	}

	cost := tracker.Cost()
	if cost <= 0 {
		t.Errorf("Cost() = %f, want > 0", cost)
	}

	tracker.Reset()
	in, out = tracker.Total()
	if in != 0 || out != 0 {
		t.Errorf("Total() after Reset = (%d, %d), want (0, 0)", in, out)
	}
}

func TestTranslateStopReason(t *testing.T) {
	tests := []struct {
		reason anthropic.StopReason
		want   StopReason
	}{
		{anthropic.StopReasonEndTurn, StopEndTurn},
		{anthropic.StopReasonToolUse, StopToolUse},
		{anthropic.StopReasonMaxTokens, StopMaxTokens},
		{anthropic.StopReason("stop_sequence"), StopEndTurn},
	}

	for _, tt := range tests {
		if got := translateStopReason(tt.reason); got != tt.want {
			t.Errorf("translateStopReason(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestCompletionHasToolCalls(t *testing.T) {
	c := &Completion{Content: "done"}
	if c.HasToolCalls() {
		t.Error("completion without tool calls should report false")
	}

	c.ToolCalls = []ToolCall{{ID: "tc_1", Name: "list_ec2_instances"}}
	if !c.HasToolCalls() {
		t.Error("completion with tool calls should report true")
	}
}
