package subagent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agenticwork/conductor/internal/llm"
	"github.com/agenticwork/conductor/internal/mcpproxy"
	"github.com/agenticwork/conductor/pkg/models"
)

// Config contains configuration options for the Executor.
type Config struct {
	// LLM is the completion client. Nil enables the degraded no-LLM path.
	LLM llm.Completer
	// Tools executes MCP tool calls. Required.
	Tools mcpproxy.ToolCaller
	// Emit receives observational events (tool calls, reasoning steps).
	// Optional; delivery never affects execution.
	Emit func(models.Event)
	// Stopped is consulted between iterations; returning true halts the
	// loop before the next LLM call. Optional.
	Stopped func() bool
	// DebugLog receives debug output. Optional.
	DebugLog func(format string, args ...interface{})
}

// Executor runs one subagent task as a ReAct loop: LLM call, then the
// requested tool calls executed sequentially, then back to the LLM, until
// the model stops calling tools or the iteration cap is reached.
type Executor struct {
	llm     llm.Completer
	tools   mcpproxy.ToolCaller
	emit    func(models.Event)
	stopped func() bool
	logf    func(string, ...interface{})
}

// NewExecutor creates a new Executor.
func NewExecutor(cfg Config) (*Executor, error) {
	if cfg.Tools == nil {
		return nil, fmt.Errorf("executor requires a tool caller")
	}
	if cfg.Emit == nil {
		cfg.Emit = func(models.Event) {}
	}
	if cfg.Stopped == nil {
		cfg.Stopped = func() bool { return false }
	}
	if cfg.DebugLog == nil {
		cfg.DebugLog = func(string, ...interface{}) {}
	}
	return &Executor{
		llm:     cfg.LLM,
		tools:   cfg.Tools,
		emit:    cfg.Emit,
		stopped: cfg.Stopped,
		logf:    cfg.DebugLog,
	}, nil
}

// Execute runs one task to a settled result. Failures are reported through
// the result, never by an error return; a failed result preserves whatever
// reasoning and tool trace was accumulated before the failure.
func (e *Executor) Execute(ctx context.Context, task *models.SubagentTask, previous map[string]*models.SubagentResult) *models.SubagentResult {
	start := time.Now()

	if e.llm == nil {
		return e.executeWithoutLLM(ctx, task, previous, start)
	}

	run := &taskRun{task: task, start: start}
	messages := []llm.Message{{Role: llm.RoleUser, Content: userPrompt(task, previous)}}
	schemas := e.toolSchemas(ctx, task)

	maxIterations := task.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	for run.iterations < maxIterations {
		if e.stopped() {
			e.logf("[executor] task %s stopped by signal after %d iterations", task.ID, run.iterations)
			return run.failed("stopped before completion")
		}
		run.iterations++

		completion, err := e.llm.CreateCompletion(ctx, llm.CompletionRequest{
			System:   systemPrompt(task),
			Messages: messages,
			Tools:    schemas,
		})
		if err != nil {
			return run.failed(fmt.Sprintf("llm call failed: %v", err))
		}
		run.usage.Add(completion.Usage.InputTokens, completion.Usage.OutputTokens)
		e.recordReasoning(run, completion.Content)

		if !completion.HasToolCalls() {
			return run.succeeded(completion.Content)
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})
		messages = append(messages, llm.Message{
			Role:        llm.RoleUser,
			ToolResults: e.runToolCalls(ctx, run, completion.ToolCalls),
		})
	}

	// Iteration cap reached: one last call with no tools attached, so the
	// model has to produce an answer from what it gathered.
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: summarizeMessage})
	completion, err := e.llm.CreateCompletion(ctx, llm.CompletionRequest{
		System:   systemPrompt(task),
		Messages: messages,
	})
	if err != nil {
		return run.failed(fmt.Sprintf("final summarize call failed: %v", err))
	}
	run.usage.Add(completion.Usage.InputTokens, completion.Usage.OutputTokens)
	return run.succeeded(completion.Content)
}

// runToolCalls executes the model's tool calls one at a time. A failing
// tool becomes an error-flagged tool result in the conversation; the model
// decides how to proceed.
func (e *Executor) runToolCalls(ctx context.Context, run *taskRun, calls []llm.ToolCall) []llm.ToolResult {
	results := make([]llm.ToolResult, 0, len(calls))
	for _, call := range calls {
		run.toolsUsed = append(run.toolsUsed, call.Name)
		e.emit(models.Event{
			Type:     models.EventSubagentToolCall,
			TaskID:   run.task.ID,
			TaskName: run.task.Name,
			Domain:   run.task.Domain,
			Tool:     call.Name,
		})

		args, err := decodeArguments(call.Arguments)
		if err != nil {
			results = append(results, llm.ToolResult{
				CallID:  call.ID,
				Content: fmt.Sprintf(`{"error": %q}`, "invalid tool arguments: "+err.Error()),
				IsError: true,
			})
			continue
		}

		payload, err := e.tools.CallTool(ctx, run.task.Server, call.Name, args)
		if err != nil {
			e.logf("[executor] task %s tool %s failed: %v", run.task.ID, call.Name, err)
			results = append(results, llm.ToolResult{
				CallID:  call.ID,
				Content: fmt.Sprintf(`{"error": %q}`, err.Error()),
				IsError: true,
			})
			continue
		}
		results = append(results, llm.ToolResult{CallID: call.ID, Content: string(payload)})
	}
	return results
}

// toolSchemas resolves the task's tool allowlist against what the proxy
// advertises. Tools the proxy does not describe get an open-ended schema;
// a failed listing degrades to open-ended schemas for everything.
func (e *Executor) toolSchemas(ctx context.Context, task *models.SubagentTask) []llm.ToolSchema {
	if len(task.Tools) == 0 {
		return nil
	}

	described := make(map[string]mcpproxy.Tool)
	if advertised, err := e.tools.AvailableTools(ctx, task.Server); err != nil {
		e.logf("[executor] listing tools for %s failed: %v", task.Server, err)
	} else {
		for _, t := range advertised {
			described[t.Name] = t
		}
	}

	schemas := make([]llm.ToolSchema, 0, len(task.Tools))
	for _, name := range task.Tools {
		tool, ok := described[name]
		if !ok {
			schemas = append(schemas, llm.ToolSchema{Name: name})
			continue
		}
		schemas = append(schemas, toolSchema(tool))
	}
	return schemas
}

// toolSchema converts a proxy tool description to the LLM schema shape.
func toolSchema(tool mcpproxy.Tool) llm.ToolSchema {
	schema := llm.ToolSchema{Name: tool.Name, Description: tool.Description}
	if len(tool.InputSchema) == 0 {
		return schema
	}
	var parsed struct {
		Properties map[string]interface{} `json:"properties"`
		Required   []string               `json:"required"`
	}
	if err := json.Unmarshal(tool.InputSchema, &parsed); err == nil {
		schema.Properties = parsed.Properties
		schema.Required = parsed.Required
	}
	return schema
}

func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}

func (e *Executor) recordReasoning(run *taskRun, content string) {
	if content == "" {
		return
	}
	run.reasoning = append(run.reasoning, content)
	e.emit(models.Event{
		Type:     models.EventSubagentReasoning,
		TaskID:   run.task.ID,
		TaskName: run.task.Name,
		Domain:   run.task.Domain,
		Message:  content,
	})
}

// taskRun accumulates per-task execution state so both result paths carry
// the full trace.
type taskRun struct {
	task       *models.SubagentTask
	start      time.Time
	iterations int
	toolsUsed  []string
	reasoning  []string
	usage      models.TokenUsage
}

func (r *taskRun) succeeded(output string) *models.SubagentResult {
	res := r.result()
	res.Success = true
	res.Output = output
	return res
}

func (r *taskRun) failed(errMsg string) *models.SubagentResult {
	res := r.result()
	res.Error = errMsg
	return res
}

func (r *taskRun) result() *models.SubagentResult {
	return &models.SubagentResult{
		TaskID:     r.task.ID,
		TaskName:   r.task.Name,
		Domain:     r.task.Domain,
		ToolsUsed:  r.toolsUsed,
		Iterations: r.iterations,
		Duration:   time.Since(r.start),
		Usage:      r.usage,
		Reasoning:  r.reasoning,
	}
}
