package subagent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenticwork/conductor/pkg/models"
)

// systemPromptTemplate frames every subagent conversation. The domain focus
// keeps a subagent from wandering into sibling territory.
const systemPromptTemplate = `You are a focused %s analysis subagent working on one slice of a larger request.
Use the tools available to you to gather concrete data before answering.
When you have enough information, respond with your findings as plain text and stop calling tools.
Stay strictly within your assigned focus; other subagents cover the rest.`

const synthesisSystemPrompt = `You combine the findings of several specialist subagents into one coherent answer.
Resolve contradictions explicitly, keep concrete numbers, and answer the original request directly.`

// summarizeMessage is sent when a task hits its iteration cap.
const summarizeMessage = `You have reached your tool budget. Summarize what you have learned so far into a final answer. Do not request any more tools.`

func systemPrompt(task *models.SubagentTask) string {
	if task.IsSynthesis() {
		return synthesisSystemPrompt
	}
	return fmt.Sprintf(systemPromptTemplate, task.Domain)
}

// userPrompt builds the opening user message. Synthesis tasks get the
// completed domain results appended, which is the only place sibling results
// flow into a prompt.
func userPrompt(task *models.SubagentTask, previous map[string]*models.SubagentResult) string {
	if !task.IsSynthesis() || len(previous) == 0 {
		return task.Prompt
	}

	var b strings.Builder
	b.WriteString(task.Prompt)
	b.WriteString("\n\nCompleted analyses:\n")
	b.WriteString(previousResultsDigest(previous))
	return b.String()
}

// previousResultsDigest renders completed results in a stable order.
func previousResultsDigest(previous map[string]*models.SubagentResult) string {
	ids := make([]string, 0, len(previous))
	for id := range previous {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		res := previous[id]
		if res == nil {
			continue
		}
		name := res.TaskName
		if name == "" {
			name = res.TaskID
		}
		if res.Success {
			fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", name, res.Domain, res.Output)
		} else {
			fmt.Fprintf(&b, "\n## %s (%s) - FAILED\n%s\n", name, res.Domain, res.Error)
		}
	}
	return b.String()
}
