package graph

import (
	"sort"
	"testing"

	"github.com/agenticwork/conductor/pkg/models"
)

func task(id string, deps ...string) *models.SubagentTask {
	return &models.SubagentTask{ID: id, Name: id, DependsOn: deps}
}

func TestBuildAndGetReady(t *testing.T) {
	g := New()
	err := g.Build([]*models.SubagentTask{
		task("aws-analysis"),
		task("azure-analysis"),
		task("synthesis", "aws-analysis", "azure-analysis"),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ready := g.GetReady()
	sort.Strings(ready)
	want := []string{"aws-analysis", "azure-analysis"}
	if len(ready) != 2 || ready[0] != want[0] || ready[1] != want[1] {
		t.Errorf("GetReady() = %v, want %v", ready, want)
	}

	g.MarkComplete("aws-analysis")
	g.MarkComplete("azure-analysis")

	ready = g.GetReady()
	if len(ready) != 1 || ready[0] != "synthesis" {
		t.Errorf("GetReady() after completing domains = %v, want [synthesis]", ready)
	}
}

func TestBuildDetectsCycle(t *testing.T) {
	g := New()
	err := g.Build([]*models.SubagentTask{
		task("a", "b"),
		task("b", "a"),
	})
	if err != ErrCycleDetected {
		t.Errorf("Build on cyclic tasks = %v, want ErrCycleDetected", err)
	}

	// The graph stays usable: nothing is ready, everything remains.
	if ready := g.GetReady(); len(ready) != 0 {
		t.Errorf("GetReady() on cycle = %v, want empty", ready)
	}
	if remaining := g.Remaining(); len(remaining) != 2 {
		t.Errorf("Remaining() = %v, want both tasks", remaining)
	}
}

func TestBuildRecordsMissingDependencies(t *testing.T) {
	g := New()
	err := g.Build([]*models.SubagentTask{
		task("a"),
		task("b", "nonexistent"),
	})
	if err != nil {
		t.Fatalf("Build with dangling dep should not fail, got %v", err)
	}

	missing := g.MissingDependencies()
	if len(missing) != 1 || missing[0] != "b->nonexistent" {
		t.Errorf("MissingDependencies() = %v, want [b->nonexistent]", missing)
	}

	// A task with an unresolvable dependency is never ready.
	ready := g.GetReady()
	if len(ready) != 1 || ready[0] != "a" {
		t.Errorf("GetReady() = %v, want [a]", ready)
	}
}

func TestGetDependents(t *testing.T) {
	g := New()
	_ = g.Build([]*models.SubagentTask{
		task("aws-analysis"),
		task("synthesis", "aws-analysis"),
	})

	deps := g.GetDependents("aws-analysis")
	if len(deps) != 1 || deps[0] != "synthesis" {
		t.Errorf("GetDependents(aws-analysis) = %v, want [synthesis]", deps)
	}
}

func TestRemaining(t *testing.T) {
	g := New()
	_ = g.Build([]*models.SubagentTask{task("a"), task("b")})

	g.MarkComplete("a")
	remaining := g.Remaining()
	if len(remaining) != 1 || remaining[0] != "b" {
		t.Errorf("Remaining() = %v, want [b]", remaining)
	}
}
