package orchestrator

import (
	"testing"

	"github.com/agenticwork/conductor/pkg/models"
)

func waveIDs(wave []*models.SubagentTask) []string {
	ids := make([]string, len(wave))
	for i, task := range wave {
		ids[i] = task.ID
	}
	return ids
}

func TestGroupByDependenciesIndependentTasksShareWave(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "aws-analysis", Priority: 0},
		{ID: "azure-analysis", Priority: 1},
		{ID: "synthesis", DependsOn: []string{"aws-analysis", "azure-analysis"}, Priority: 2},
	}

	waves := GroupByDependencies(tasks)
	if len(waves) != 2 {
		t.Fatalf("expected 2 waves, got %d", len(waves))
	}
	if got := waveIDs(waves[0]); len(got) != 2 || got[0] != "aws-analysis" || got[1] != "azure-analysis" {
		t.Errorf("wave 0 = %v, want [aws-analysis azure-analysis]", got)
	}
	if got := waveIDs(waves[1]); len(got) != 1 || got[0] != "synthesis" {
		t.Errorf("wave 1 = %v, want [synthesis]", got)
	}
}

func TestGroupByDependenciesChain(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "c", DependsOn: []string{"b"}},
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
	}

	waves := GroupByDependencies(tasks)
	if len(waves) != 3 {
		t.Fatalf("expected 3 waves, got %d", len(waves))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := waveIDs(waves[i]); len(got) != 1 || got[0] != want {
			t.Errorf("wave %d = %v, want [%s]", i, got, want)
		}
	}
}

func TestGroupByDependenciesEveryTaskAppearsOnce(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "a"},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "c", DependsOn: []string{"a"}},
		{ID: "d", DependsOn: []string{"b", "c"}},
		{ID: "e"},
	}

	waves := GroupByDependencies(tasks)
	seen := make(map[string]int)
	for _, wave := range waves {
		for _, task := range wave {
			seen[task.ID]++
		}
	}
	if len(seen) != len(tasks) {
		t.Fatalf("grouped %d distinct tasks, want %d", len(seen), len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %s appears %d times", id, n)
		}
	}
}

func TestGroupByDependenciesDanglingDependencyFlushed(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "a"},
		{ID: "b", DependsOn: []string{"missing"}},
	}

	waves := GroupByDependencies(tasks)
	var total int
	for _, wave := range waves {
		total += len(wave)
	}
	if total != 2 {
		t.Fatalf("expected both tasks grouped despite dangling dep, got %d", total)
	}
	last := waves[len(waves)-1]
	if got := waveIDs(last); len(got) != 1 || got[0] != "b" {
		t.Errorf("final fallback wave = %v, want [b]", got)
	}
}

func TestGroupByDependenciesCycleFlushed(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "a", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
	}

	waves := GroupByDependencies(tasks)
	if len(waves) != 1 {
		t.Fatalf("expected a single fallback wave, got %d", len(waves))
	}
	if len(waves[0]) != 2 {
		t.Errorf("fallback wave has %d tasks, want 2", len(waves[0]))
	}
}

func TestGroupByDependenciesEmpty(t *testing.T) {
	if waves := GroupByDependencies(nil); waves != nil {
		t.Errorf("expected nil waves for no tasks, got %v", waves)
	}
}

func TestGroupByDependenciesWaveOrderIsDeterministic(t *testing.T) {
	tasks := []*models.SubagentTask{
		{ID: "z", Priority: 1},
		{ID: "m", Priority: 0},
		{ID: "a", Priority: 1},
	}

	waves := GroupByDependencies(tasks)
	if len(waves) != 1 {
		t.Fatalf("expected 1 wave, got %d", len(waves))
	}
	got := waveIDs(waves[0])
	want := []string{"m", "a", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wave order = %v, want %v", got, want)
		}
	}
}
