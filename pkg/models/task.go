// Package models defines the core data types shared across Conductor.
package models

import "time"

// Domain is a fixed category of subject matter used to route work to a
// specialized prompt and tool set.
type Domain string

const (
	// DomainAWS covers AWS infrastructure and cost questions.
	DomainAWS Domain = "aws"
	// DomainAzure covers Azure infrastructure and cost questions.
	DomainAzure Domain = "azure"
	// DomainGCP covers Google Cloud infrastructure questions.
	DomainGCP Domain = "gcp"
	// DomainGitHub covers repositories, pull requests, and CI.
	DomainGitHub Domain = "github"
	// DomainFinancial covers budgets, spend, and financial analysis.
	DomainFinancial Domain = "financial"
	// DomainLegal covers compliance, contracts, and policy questions.
	DomainLegal Domain = "legal"
	// DomainTechnical covers general engineering and architecture questions.
	DomainTechnical Domain = "technical"
	// DomainResearch covers open-ended investigation and comparison work.
	DomainResearch Domain = "research"
	// DomainGeneral is the fallback when no specific domain matches.
	DomainGeneral Domain = "general"
	// DomainSynthesis marks the task that combines all domain outputs.
	DomainSynthesis Domain = "synthesis"
)

// Valid returns true if the domain is a known value.
func (d Domain) Valid() bool {
	switch d {
	case DomainAWS, DomainAzure, DomainGCP, DomainGitHub, DomainFinancial,
		DomainLegal, DomainTechnical, DomainResearch, DomainGeneral, DomainSynthesis:
		return true
	default:
		return false
	}
}

// Complexity is the detected difficulty tier of a request.
type Complexity string

const (
	// ComplexitySimple indicates a single-domain, single-task request.
	ComplexitySimple Complexity = "simple"
	// ComplexityModerate indicates a multi-domain request.
	ComplexityModerate Complexity = "moderate"
	// ComplexityComplex indicates a multi-domain request with explicit
	// parallel intent or many detected domains.
	ComplexityComplex Complexity = "complex"
)

// SubagentTask is a unit of work produced by decomposition.
// Tasks are immutable once a plan is built.
type SubagentTask struct {
	// ID is the unique identifier for this task within its plan.
	ID string `json:"id"`
	// Name is the short human-readable name of the task.
	Name string `json:"name"`
	// Domain routes the task to a specialized prompt and tool set.
	Domain Domain `json:"domain"`
	// Server is the MCP server that executes this task's tools.
	Server string `json:"server,omitempty"`
	// Tools lists the tool names this task is allowed to invoke.
	Tools []string `json:"tools,omitempty"`
	// Prompt is the full instruction handed to the subagent.
	Prompt string `json:"prompt"`
	// DependsOn lists task IDs that must complete before this task.
	DependsOn []string `json:"depends_on,omitempty"`
	// Priority orders tasks within a wave (lower runs first when sequential).
	Priority int `json:"priority,omitempty"`
	// MaxIterations bounds the ReAct loop for this task.
	MaxIterations int `json:"max_iterations"`
	// Timeout bounds the wall-clock execution of this task. Zero means
	// no per-task timeout.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// IsSynthesis returns true if this is the synthesis task that combines
// the outputs of all domain tasks.
func (t *SubagentTask) IsSynthesis() bool {
	return t.Domain == DomainSynthesis
}
