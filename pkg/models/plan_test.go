package models

import "testing"

func TestPlanTaskLookup(t *testing.T) {
	plan := &OrchestrationPlan{
		Tasks: []*SubagentTask{
			{ID: "aws-analysis", Domain: DomainAWS},
			{ID: "azure-analysis", Domain: DomainAzure},
		},
	}

	if task := plan.Task("aws-analysis"); task == nil || task.Domain != DomainAWS {
		t.Errorf("Task(aws-analysis) = %+v, want aws domain task", task)
	}
	if task := plan.Task("missing"); task != nil {
		t.Errorf("Task(missing) = %+v, want nil", task)
	}
}

func TestResultLookupAndCounts(t *testing.T) {
	result := &OrchestrationResult{
		Results: []*SubagentResult{
			{TaskID: "a", Success: true},
			{TaskID: "b", Success: false, Error: "llm call failed"},
			{TaskID: "c", Success: true},
		},
	}

	if got := result.SucceededCount(); got != 2 {
		t.Errorf("SucceededCount() = %d, want 2", got)
	}

	res := result.Result("b")
	if res == nil {
		t.Fatal("Result(b) returned nil")
	}
	if res.Success {
		t.Error("Result(b) should be a failure")
	}
	if result.Result("missing") != nil {
		t.Error("Result(missing) should be nil")
	}
}
