package subagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agenticwork/conductor/internal/llm"
	"github.com/agenticwork/conductor/pkg/models"
)

// maxSummaryLen truncates per-task output in the deterministic narrative.
const maxSummaryLen = 600

// timeRounding keeps durations readable in the deterministic narrative.
const timeRounding = 10 * time.Millisecond

const synthesizePromptHeader = `Combine the following analyses into one coherent answer for the original request.

Original request: %s

Analyses:
`

// ResultSynthesizer produces the final narrative over all subagent results.
// With an LLM it asks for a unified answer; without one, or on any LLM
// error, it falls back to a deterministic template. Synthesize never fails.
type ResultSynthesizer struct {
	llm  llm.Completer
	logf func(string, ...interface{})
}

// SynthesizerConfig contains configuration options for the ResultSynthesizer.
type SynthesizerConfig struct {
	// LLM is the completion client. Nil means deterministic synthesis only.
	LLM llm.Completer
	// DebugLog receives debug output. Optional.
	DebugLog func(format string, args ...interface{})
}

// NewSynthesizer creates a new ResultSynthesizer.
func NewSynthesizer(cfg SynthesizerConfig) *ResultSynthesizer {
	if cfg.DebugLog == nil {
		cfg.DebugLog = func(string, ...interface{}) {}
	}
	return &ResultSynthesizer{llm: cfg.LLM, logf: cfg.DebugLog}
}

// Synthesize combines results into the final narrative.
func (s *ResultSynthesizer) Synthesize(ctx context.Context, request string, results []*models.SubagentResult) string {
	succeeded, failed := partition(results)

	if s.llm != nil && len(succeeded) > 0 {
		completion, err := s.llm.CreateCompletion(ctx, llm.CompletionRequest{
			System: synthesisSystemPrompt,
			Messages: []llm.Message{{
				Role:    llm.RoleUser,
				Content: buildSynthesisPrompt(request, succeeded, failed),
			}},
		})
		if err != nil {
			s.logf("[synthesizer] llm synthesis failed, using deterministic narrative: %v", err)
		} else if completion.Content != "" {
			return completion.Content
		}
	}

	return fallbackNarrative(results)
}

// buildSynthesisPrompt embeds every successful result's domain, tools, and
// payload, and names the failures so the narrative can acknowledge gaps.
func buildSynthesisPrompt(request string, succeeded, failed []*models.SubagentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, synthesizePromptHeader, request)
	for _, res := range succeeded {
		fmt.Fprintf(&b, "\n## %s (domain: %s, tools: %s)\n%s\n",
			displayTaskName(res), res.Domain, strings.Join(res.ToolsUsed, ", "), res.Output)
	}
	if len(failed) > 0 {
		b.WriteString("\nThe following analyses failed and their findings are unavailable:\n")
		for _, res := range failed {
			fmt.Fprintf(&b, "- %s: %s\n", displayTaskName(res), res.Error)
		}
	}
	return b.String()
}

// fallbackNarrative is the deterministic synthesis: a "### {taskName}"
// section per successful result and, when failures exist, a
// "### Failed Analyses" section listing each failed task and its error.
func fallbackNarrative(results []*models.SubagentResult) string {
	succeeded, failed := partition(results)

	var b strings.Builder
	b.WriteString("# Combined Analysis\n")
	for _, res := range succeeded {
		fmt.Fprintf(&b, "\n### %s\n", displayTaskName(res))
		fmt.Fprintf(&b, "Domain: %s | Duration: %s", res.Domain, res.Duration.Round(timeRounding))
		if len(res.ToolsUsed) > 0 {
			fmt.Fprintf(&b, " | Tools: %s", strings.Join(res.ToolsUsed, ", "))
		}
		b.WriteString("\n")
		b.WriteString(truncate(res.Output, maxSummaryLen))
		b.WriteString("\n")
	}

	if len(failed) > 0 {
		b.WriteString("\n### Failed Analyses\n")
		for _, res := range failed {
			fmt.Fprintf(&b, "- %s: %s\n", displayTaskName(res), res.Error)
		}
	}

	return b.String()
}

func partition(results []*models.SubagentResult) (succeeded, failed []*models.SubagentResult) {
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Success {
			succeeded = append(succeeded, res)
		} else {
			failed = append(failed, res)
		}
	}
	return succeeded, failed
}

func displayTaskName(res *models.SubagentResult) string {
	if res.TaskName != "" {
		return res.TaskName
	}
	return res.TaskID
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
