package models

import "time"

// EventType represents the kind of orchestration lifecycle event.
type EventType string

const (
	// EventOrchestrationStarted indicates a plan has begun executing.
	EventOrchestrationStarted EventType = "orchestration_started"
	// EventSubagentStarted indicates a subagent task has started.
	EventSubagentStarted EventType = "subagent_started"
	// EventSubagentToolCall indicates a subagent invoked a tool.
	EventSubagentToolCall EventType = "subagent_tool_call"
	// EventSubagentReasoning carries an intermediate reasoning step.
	EventSubagentReasoning EventType = "subagent_reasoning"
	// EventSubagentCompleted indicates a subagent task has finished.
	EventSubagentCompleted EventType = "subagent_completed"
	// EventOrchestrationSynthesizing indicates synthesis has begun.
	EventOrchestrationSynthesizing EventType = "orchestration_synthesizing"
	// EventOrchestrationCompleted indicates the orchestration is done.
	EventOrchestrationCompleted EventType = "orchestration_completed"
)

// Event is an observational lifecycle notification. Events are purely for
// UI and logging; dropping one never affects orchestration correctness.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// TaskID is the ID of the related task, if applicable.
	TaskID string
	// TaskName is the name of the related task, if applicable.
	TaskName string
	// Domain is the domain of the related task, if applicable.
	Domain Domain
	// Tool is the tool name for tool-call events.
	Tool string
	// Message provides additional context about the event.
	Message string
	// Success reports the task outcome for completion events.
	Success bool
	// Duration is the elapsed time for completion events.
	Duration time.Duration
}
