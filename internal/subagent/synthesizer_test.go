package subagent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agenticwork/conductor/internal/llm"
	"github.com/agenticwork/conductor/pkg/models"
)

func sampleResults() []*models.SubagentResult {
	return []*models.SubagentResult{
		{
			TaskID: "aws-analysis", TaskName: "AWS Analysis", Domain: models.DomainAWS,
			Success: true, Output: "EC2 spend is $4,200 this month.",
			ToolsUsed: []string{"get_cost_summary"}, Duration: 1200 * time.Millisecond,
		},
		{
			TaskID: "azure-analysis", TaskName: "Azure Analysis", Domain: models.DomainAzure,
			Success: false, Error: "proxy unreachable",
		},
	}
}

func TestSynthesizeUsesLLMNarrative(t *testing.T) {
	completer := &fakeCompleter{script: []*llm.Completion{textCompletion("unified narrative")}}
	s := NewSynthesizer(SynthesizerConfig{LLM: completer})

	got := s.Synthesize(context.Background(), "Compare costs", sampleResults())
	if got != "unified narrative" {
		t.Errorf("Synthesize = %q", got)
	}

	prompt := completer.requests[0].Messages[0].Content
	if !strings.Contains(prompt, "Compare costs") {
		t.Errorf("prompt missing original request: %q", prompt)
	}
	if !strings.Contains(prompt, "EC2 spend is $4,200") {
		t.Errorf("prompt missing successful payload: %q", prompt)
	}
	if !strings.Contains(prompt, "Azure Analysis") || !strings.Contains(prompt, "proxy unreachable") {
		t.Errorf("prompt should name the failure: %q", prompt)
	}
}

func TestSynthesizeFallsBackOnLLMError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("boom")}
	s := NewSynthesizer(SynthesizerConfig{LLM: completer})

	got := s.Synthesize(context.Background(), "Compare costs", sampleResults())
	assertFallbackShape(t, got)
}

func TestSynthesizeWithoutLLM(t *testing.T) {
	s := NewSynthesizer(SynthesizerConfig{})
	got := s.Synthesize(context.Background(), "Compare costs", sampleResults())
	assertFallbackShape(t, got)
}

func TestSynthesizeAllFailedSkipsLLM(t *testing.T) {
	completer := &fakeCompleter{script: []*llm.Completion{textCompletion("should not be used")}}
	s := NewSynthesizer(SynthesizerConfig{LLM: completer})

	results := []*models.SubagentResult{
		{TaskID: "aws-analysis", TaskName: "AWS Analysis", Success: false, Error: "down"},
	}
	got := s.Synthesize(context.Background(), "check aws", results)

	if len(completer.requests) != 0 {
		t.Errorf("LLM should not be called with zero successes")
	}
	if !strings.Contains(got, "### Failed Analyses") {
		t.Errorf("Synthesize = %q", got)
	}
}

func assertFallbackShape(t *testing.T, got string) {
	t.Helper()
	if !strings.Contains(got, "### AWS Analysis") {
		t.Errorf("missing per-task heading: %q", got)
	}
	if !strings.Contains(got, "### Failed Analyses") {
		t.Errorf("missing failed section: %q", got)
	}
	if !strings.Contains(got, "Azure Analysis: proxy unreachable") {
		t.Errorf("missing failure listing: %q", got)
	}
	if !strings.Contains(got, "get_cost_summary") {
		t.Errorf("missing tools listing: %q", got)
	}
}

func TestFallbackNarrativeTruncatesLongOutput(t *testing.T) {
	long := strings.Repeat("x", maxSummaryLen+50)
	results := []*models.SubagentResult{{
		TaskID: "aws-analysis", TaskName: "AWS Analysis", Domain: models.DomainAWS,
		Success: true, Output: long,
	}}

	got := fallbackNarrative(results)
	if strings.Contains(got, long) {
		t.Error("output was not truncated")
	}
	if !strings.Contains(got, "...") {
		t.Error("truncation marker missing")
	}
}
