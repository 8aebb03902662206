package orchestrator

import (
	"sort"

	"github.com/agenticwork/conductor/internal/graph"
	"github.com/agenticwork/conductor/pkg/models"
)

// GroupByDependencies partitions tasks into dependency-ordered waves.
// Each wave contains every task whose dependencies are already satisfied by
// earlier waves; waves execute in order, tasks within a wave may run
// concurrently.
//
// The grouper always terminates and returns every input task exactly once:
// if a scan finds no runnable task while tasks remain (a cycle or a dangling
// dependency), the remainder is flushed as one final wave and a warning is
// logged. This fail-open policy keeps a single bad dependency from rejecting
// the whole plan.
func GroupByDependencies(tasks []*models.SubagentTask) [][]*models.SubagentTask {
	if len(tasks) == 0 {
		return nil
	}

	g := graph.New()
	g.SetDebugLog(debugLog)
	if err := g.Build(tasks); err != nil {
		debugLog("[grouper] WARNING: %v - unresolvable tasks will run in a final fallback wave", err)
	}
	if missing := g.MissingDependencies(); len(missing) > 0 {
		debugLog("[grouper] WARNING: dangling dependencies %v - affected tasks will run in a final fallback wave", missing)
	}

	var waves [][]*models.SubagentTask
	placed := 0
	for placed < g.Size() {
		readyIDs := g.GetReady()
		if len(readyIDs) == 0 {
			// Cycle or dangling dependency: flush everything left rather
			// than loop forever.
			remaining := g.Remaining()
			debugLog("[grouper] WARNING: no runnable tasks with %d remaining, flushing %v as final wave", len(remaining), remaining)
			waves = append(waves, tasksByID(g, remaining))
			break
		}

		wave := tasksByID(g, readyIDs)
		waves = append(waves, wave)
		placed += len(wave)
		for _, task := range wave {
			g.MarkComplete(task.ID)
		}
	}

	return waves
}

// tasksByID resolves IDs to tasks, sorted by priority then ID for a
// deterministic wave order.
func tasksByID(g *graph.DependencyGraph, ids []string) []*models.SubagentTask {
	tasks := make([]*models.SubagentTask, 0, len(ids))
	for _, id := range ids {
		if task := g.GetTask(id); task != nil {
			tasks = append(tasks, task)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}
