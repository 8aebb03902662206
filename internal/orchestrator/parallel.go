package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agenticwork/conductor/pkg/models"
)

// SubagentRunner executes one task and always returns a result; failures
// are reported through SubagentResult.Success, never by panicking or by an
// error return. The production implementation is subagent.Executor.
type SubagentRunner interface {
	Execute(ctx context.Context, task *models.SubagentTask, previous map[string]*models.SubagentResult) *models.SubagentResult
}

// runWave executes every task in a wave concurrently, bounded by maxParallel
// (0 means unbounded), and returns one result per task. The wave settles
// only when every task has settled; a failed or timed-out task never blocks
// its siblings.
func runWave(ctx context.Context, runner SubagentRunner, wave []*models.SubagentTask, previous map[string]*models.SubagentResult, maxParallel int) []*models.SubagentResult {
	results := make([]*models.SubagentResult, len(wave))

	eg, egCtx := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		eg.SetLimit(maxParallel)
	}

	var mu sync.Mutex
	for i, task := range wave {
		eg.Go(func() error {
			result := runTask(egCtx, runner, task, previous)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil // task failures are data, not wave failures
		})
	}
	// Goroutines never return errors, so Wait only joins.
	_ = eg.Wait()

	return results
}

// runTask executes one task under its timeout, if it has one.
func runTask(ctx context.Context, runner SubagentRunner, task *models.SubagentTask, previous map[string]*models.SubagentResult) *models.SubagentResult {
	if task.Timeout <= 0 {
		return runner.Execute(ctx, task, previous)
	}

	taskCtx, cancel := context.WithTimeout(ctx, task.Timeout)
	defer cancel()

	done := make(chan *models.SubagentResult, 1)
	start := time.Now()
	go func() {
		done <- runner.Execute(taskCtx, task, previous)
	}()

	select {
	case result := <-done:
		return result
	case <-taskCtx.Done():
		// The runner's in-flight external call keeps running until it
		// observes ctx cancellation; we stop waiting for it here so the
		// wave can settle.
		debugLog("[wave] task %s timed out after %v", task.ID, task.Timeout)
		return &models.SubagentResult{
			TaskID:   task.ID,
			TaskName: task.Name,
			Domain:   task.Domain,
			Success:  false,
			Error:    fmt.Sprintf("task timed out after %v", task.Timeout),
			Duration: time.Since(start),
		}
	}
}
