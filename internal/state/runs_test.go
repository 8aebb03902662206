package state

import (
	"testing"
	"time"

	"github.com/agenticwork/conductor/pkg/models"
)

func sampleRun(id string) *models.OrchestrationResult {
	return &models.OrchestrationResult{
		Plan: &models.OrchestrationPlan{
			ID:             id,
			Request:        "Compare AWS and Azure costs",
			Complexity:     models.ComplexityModerate,
			Parallelizable: true,
			CreatedAt:      time.Now(),
		},
		Results: []*models.SubagentResult{
			{
				TaskID: "aws-analysis", TaskName: "AWS Analysis", Domain: models.DomainAWS,
				Success: true, Output: "EC2 spend is $4,200",
				ToolsUsed: []string{"get_cost_summary", "list_ec2_instances"},
				Iterations: 3, Duration: 1200 * time.Millisecond,
				Usage: models.TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
			},
			{
				TaskID: "azure-analysis", TaskName: "Azure Analysis", Domain: models.DomainAzure,
				Success: false, Error: "proxy unreachable", Iterations: 1,
			},
		},
		Synthesis:       "combined narrative",
		Duration:        2 * time.Second,
		ParallelSpeedup: 1.8,
		Usage:           models.TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveRun(sampleRun("run-1")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	run, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run == nil {
		t.Fatal("run not found")
	}
	if run.Request != "Compare AWS and Azure costs" {
		t.Errorf("Request = %q", run.Request)
	}
	if run.Complexity != models.ComplexityModerate {
		t.Errorf("Complexity = %q", run.Complexity)
	}
	if !run.Parallelizable {
		t.Error("Parallelizable lost")
	}
	if run.Synthesis != "combined narrative" {
		t.Errorf("Synthesis = %q", run.Synthesis)
	}
	if run.Duration != 2*time.Second {
		t.Errorf("Duration = %v", run.Duration)
	}
	if run.Speedup != 1.8 {
		t.Errorf("Speedup = %v", run.Speedup)
	}
	if run.Usage.TotalTokens != 150 {
		t.Errorf("Usage = %+v", run.Usage)
	}
	if run.Succeeded != 1 || run.TaskCount != 2 {
		t.Errorf("Succeeded/TaskCount = %d/%d", run.Succeeded, run.TaskCount)
	}
}

func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)
	run, err := db.GetRun("nope")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run != nil {
		t.Errorf("run = %+v, want nil", run)
	}
}

func TestGetRunTasks(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveRun(sampleRun("run-1")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	tasks, err := db.GetRunTasks("run-1")
	if err != nil {
		t.Fatalf("GetRunTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}

	aws := tasks[0]
	if aws.TaskID != "aws-analysis" {
		t.Fatalf("tasks[0] = %+v", aws)
	}
	if !aws.Success || aws.Iterations != 3 {
		t.Errorf("aws task = %+v", aws)
	}
	if len(aws.ToolsUsed) != 2 || aws.ToolsUsed[0] != "get_cost_summary" {
		t.Errorf("ToolsUsed = %v", aws.ToolsUsed)
	}
	if aws.Duration != 1200*time.Millisecond {
		t.Errorf("Duration = %v", aws.Duration)
	}

	azure := tasks[1]
	if azure.Success || azure.Error != "proxy unreachable" {
		t.Errorf("azure task = %+v", azure)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	first := sampleRun("run-1")
	first.Plan.CreatedAt = time.Now().Add(-time.Hour)
	second := sampleRun("run-2")

	if err := db.SaveRun(first); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := db.SaveRun(second); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Errorf("order = [%s %s], want [run-2 run-1]", runs[0].ID, runs[1].ID)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveRun(sampleRun("run-1")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	if err := db.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	tasks, err := db.GetRunTasks("run-1")
	if err != nil {
		t.Fatalf("GetRunTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("task rows survived delete: %v", tasks)
	}
}

func TestSaveRunNil(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveRun(nil); err == nil {
		t.Error("expected error for nil result")
	}
}
