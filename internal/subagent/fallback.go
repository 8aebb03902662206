package subagent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agenticwork/conductor/pkg/models"
)

// maxFallbackToolCalls bounds the degraded no-LLM path.
const maxFallbackToolCalls = 3

// executeWithoutLLM is the degraded path taken when no LLM client was
// configured: a few direct tool calls with default arguments, or the
// deterministic synthesis for the synthesis task. The result is structurally
// identical to an LLM-backed one and reports a single iteration.
func (e *Executor) executeWithoutLLM(ctx context.Context, task *models.SubagentTask, previous map[string]*models.SubagentResult, start time.Time) *models.SubagentResult {
	run := &taskRun{task: task, start: start, iterations: 1}

	if task.IsSynthesis() {
		return run.succeeded(fallbackNarrative(resultsInOrder(previous)))
	}

	tools := task.Tools
	if len(tools) > maxFallbackToolCalls {
		tools = tools[:maxFallbackToolCalls]
	}
	if len(tools) == 0 {
		return run.succeeded("No LLM client configured and no tools available for this task.")
	}

	var b strings.Builder
	succeeded := 0
	for _, name := range tools {
		run.toolsUsed = append(run.toolsUsed, name)
		e.emit(models.Event{
			Type:     models.EventSubagentToolCall,
			TaskID:   task.ID,
			TaskName: task.Name,
			Domain:   task.Domain,
			Tool:     name,
		})

		payload, err := e.tools.CallTool(ctx, task.Server, name, nil)
		if err != nil {
			e.logf("[executor] fallback tool %s failed: %v", name, err)
			fmt.Fprintf(&b, "## %s\nerror: %v\n\n", name, err)
			continue
		}
		succeeded++
		fmt.Fprintf(&b, "## %s\n%s\n\n", name, string(payload))
	}

	if succeeded == 0 {
		return run.failed("all fallback tool calls failed:\n" + b.String())
	}
	return run.succeeded(strings.TrimSpace(b.String()))
}

// resultsInOrder flattens the previous-results map deterministically.
func resultsInOrder(previous map[string]*models.SubagentResult) []*models.SubagentResult {
	ids := make([]string, 0, len(previous))
	for id := range previous {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]*models.SubagentResult, 0, len(ids))
	for _, id := range ids {
		if res := previous[id]; res != nil {
			results = append(results, res)
		}
	}
	return results
}
