// Package graph provides a dependency graph for subagent task scheduling.
package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/agenticwork/conductor/pkg/models"
)

// ErrCycleDetected indicates a circular dependency was found in the task graph.
var ErrCycleDetected = errors.New("circular dependency detected")

// DependencyGraph represents a directed graph of task dependencies.
// Tasks are nodes, and edges represent "blocked by" relationships.
type DependencyGraph struct {
	mu sync.RWMutex
	// nodes maps task ID to the task itself.
	nodes map[string]*models.SubagentTask
	// edges maps task ID to IDs of tasks it depends on (is blocked by).
	edges map[string][]string
	// completed tracks which tasks have been marked complete.
	completed map[string]bool
	// missing records dependency references to tasks not in the graph.
	missing []string
	// debugLog is an optional logging function.
	debugLog func(format string, args ...interface{})
}

// New creates a new empty dependency graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes:     make(map[string]*models.SubagentTask),
		edges:     make(map[string][]string),
		completed: make(map[string]bool),
		debugLog:  func(format string, args ...interface{}) {},
	}
}

// SetDebugLog sets the debug logging function.
func (g *DependencyGraph) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		g.debugLog = fn
	}
}

// Build constructs the dependency graph from a slice of tasks.
// Unknown dependency references are recorded but do not fail the build;
// the grouper handles them with its fail-open final wave. A cycle is
// reported as ErrCycleDetected, again with the graph left usable.
func (g *DependencyGraph) Build(tasks []*models.SubagentTask) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.debugLog("[graph.Build] building graph from %d tasks", len(tasks))

	for _, task := range tasks {
		g.nodes[task.ID] = task
		g.edges[task.ID] = nil
	}

	for _, task := range tasks {
		for _, depID := range task.DependsOn {
			if _, exists := g.nodes[depID]; !exists {
				g.debugLog("[graph.Build] task %s depends on unknown task %s", task.ID, depID)
				g.missing = append(g.missing, fmt.Sprintf("%s->%s", task.ID, depID))
			}
			g.edges[task.ID] = append(g.edges[task.ID], depID)
		}
	}

	if g.hasCycleLocked() {
		return ErrCycleDetected
	}
	return nil
}

// MissingDependencies returns "task->dep" entries for dependency references
// that do not resolve to a task in the graph.
func (g *DependencyGraph) MissingDependencies() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.missing
}

// HasCycle returns true if the graph contains a circular dependency.
// Uses depth-first search with coloring to detect back edges.
func (g *DependencyGraph) HasCycle() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hasCycleLocked()
}

// hasCycleLocked is the internal implementation that assumes the lock is held.
func (g *DependencyGraph) hasCycleLocked() bool {
	// Color states: 0 = white (unvisited), 1 = gray (in progress), 2 = black (done).
	colors := make(map[string]int)
	for id := range g.nodes {
		colors[id] = 0
	}

	var visit func(id string) bool
	visit = func(id string) bool {
		colors[id] = 1

		for _, depID := range g.edges[id] {
			if _, exists := g.nodes[depID]; !exists {
				continue // dangling references cannot form cycles
			}
			switch colors[depID] {
			case 1:
				return true
			case 0:
				if visit(depID) {
					return true
				}
			}
		}

		colors[id] = 2
		return false
	}

	for id := range g.nodes {
		if colors[id] == 0 {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

// GetReady returns task IDs whose dependencies are all completed and that
// are not themselves completed. These tasks can run in parallel.
func (g *DependencyGraph) GetReady() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var ready []string
	for id := range g.nodes {
		if g.completed[id] {
			continue
		}

		allDepsComplete := true
		for _, depID := range g.edges[id] {
			if !g.completed[depID] {
				allDepsComplete = false
				break
			}
		}

		if allDepsComplete {
			ready = append(ready, id)
		}
	}

	g.debugLog("[graph.GetReady] returning %d ready tasks: %v", len(ready), ready)
	return ready
}

// MarkComplete marks a task as completed in the graph.
// This affects subsequent calls to GetReady.
func (g *DependencyGraph) MarkComplete(taskID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed[taskID] = true
}

// Remaining returns the IDs of tasks not yet marked complete.
func (g *DependencyGraph) Remaining() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var remaining []string
	for id := range g.nodes {
		if !g.completed[id] {
			remaining = append(remaining, id)
		}
	}
	return remaining
}

// GetTask returns the task for a given ID, or nil if not found.
func (g *DependencyGraph) GetTask(taskID string) *models.SubagentTask {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[taskID]
}

// Size returns the number of tasks in the graph.
func (g *DependencyGraph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// GetDependents returns the IDs of tasks that depend on the given task.
func (g *DependencyGraph) GetDependents(taskID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var dependents []string
	for id, deps := range g.edges {
		for _, depID := range deps {
			if depID == taskID {
				dependents = append(dependents, id)
				break
			}
		}
	}
	return dependents
}
