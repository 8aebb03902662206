package models

import "time"

// OrchestrationPlan is the full execution plan for one request.
// Plans are built once and are read-only during execution.
type OrchestrationPlan struct {
	// ID is the unique identifier for this plan.
	ID string `json:"id"`
	// Request is the original free-text user request.
	Request string `json:"request"`
	// Complexity is the detected difficulty tier.
	Complexity Complexity `json:"complexity"`
	// Parallelizable reports whether the plan may execute waves concurrently.
	Parallelizable bool `json:"parallelizable"`
	// Domains lists the detected domains, in table order.
	Domains []Domain `json:"domains,omitempty"`
	// Tasks is the full subtask list.
	Tasks []*SubagentTask `json:"tasks"`
	// Waves groups the tasks into dependency-ordered execution waves.
	// Every task appears in exactly one wave.
	Waves [][]*SubagentTask `json:"-"`
	// CreatedAt is when the plan was built.
	CreatedAt time.Time `json:"created_at"`
}

// Task returns the task with the given ID, or nil if not present.
func (p *OrchestrationPlan) Task(id string) *SubagentTask {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// OrchestrationResult is the outcome of executing a plan.
type OrchestrationResult struct {
	// Plan is the executed plan.
	Plan *OrchestrationPlan `json:"plan"`
	// Results holds one entry per executed task, in completion order.
	Results []*SubagentResult `json:"results"`
	// Synthesis is the final combined narrative.
	Synthesis string `json:"synthesis"`
	// Duration is the total wall-clock time of the orchestration.
	Duration time.Duration `json:"duration"`
	// ParallelSpeedup is the sum of individual task durations divided by
	// the wall-clock duration. Values above 1 indicate concurrency won time.
	ParallelSpeedup float64 `json:"parallel_speedup"`
	// Usage is the aggregate token consumption across all tasks.
	Usage TokenUsage `json:"usage"`
}

// Result returns the result for the given task ID, or nil if not present.
func (r *OrchestrationResult) Result(taskID string) *SubagentResult {
	for _, res := range r.Results {
		if res.TaskID == taskID {
			return res
		}
	}
	return nil
}

// SucceededCount returns how many tasks completed successfully.
func (r *OrchestrationResult) SucceededCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}
