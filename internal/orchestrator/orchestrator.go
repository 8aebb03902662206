package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenticwork/conductor/internal/mcpproxy"
	"github.com/agenticwork/conductor/pkg/models"
)

// Synthesizer combines subagent results into the final narrative.
// Implementations never fail: the production synthesizer falls back to a
// deterministic template when its LLM path errors.
type Synthesizer interface {
	Synthesize(ctx context.Context, request string, results []*models.SubagentResult) string
}

// Config contains configuration options for the Orchestrator.
type Config struct {
	// Runner executes individual subagent tasks. Required.
	Runner SubagentRunner
	// Synthesizer produces the final narrative. Required.
	Synthesizer Synthesizer
	// Decomposer builds subtask lists. If nil, a default is created.
	Decomposer *Decomposer
	// Tools is the optional MCP proxy used to scope task tool lists to
	// what is actually available. If nil, profile defaults are used as-is.
	Tools mcpproxy.ToolCaller
	// MaxParallel bounds concurrent tasks within a wave. Zero means
	// unbounded.
	MaxParallel int
	// Logger receives debug output. If nil, logging is disabled.
	Logger *DebugLogger
}

// Orchestrator coordinates the workflow from request to synthesized answer:
// classify -> decompose -> group -> execute waves -> synthesize.
type Orchestrator struct {
	runner      SubagentRunner
	synthesizer Synthesizer
	decomposer  *Decomposer
	tools       mcpproxy.ToolCaller
	maxParallel int
	logger      *DebugLogger
	emitter     *Emitter
}

// New creates a new Orchestrator with the given configuration.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("orchestrator requires a subagent runner")
	}
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("orchestrator requires a synthesizer")
	}
	if cfg.Decomposer == nil {
		cfg.Decomposer = NewDecomposer(DecomposerConfig{})
	}
	if cfg.Logger != nil {
		setPackageLogger(cfg.Logger)
	}

	return &Orchestrator{
		runner:      cfg.Runner,
		synthesizer: cfg.Synthesizer,
		decomposer:  cfg.Decomposer,
		tools:       cfg.Tools,
		maxParallel: cfg.MaxParallel,
		logger:      cfg.Logger,
		emitter:     NewEmitter(),
	}, nil
}

// Events returns the channel of lifecycle events for UI streaming.
func (o *Orchestrator) Events() <-chan models.Event {
	return o.emitter.Events()
}

// Emit publishes an observational event on the orchestrator's channel.
// Collaborators (the subagent executor) use this for tool-call and
// reasoning events.
func (o *Orchestrator) Emit(event models.Event) {
	o.emitter.Emit(event)
}

// DroppedEventCount returns how many events were dropped by slow consumers.
func (o *Orchestrator) DroppedEventCount() uint64 {
	return o.emitter.DroppedCount()
}

// CreatePlan classifies the request, decomposes it into subtasks, and groups
// the tasks into dependency-ordered waves. Plans are read-only afterward.
func (o *Orchestrator) CreatePlan(ctx context.Context, request string) *models.OrchestrationPlan {
	domains := DetectDomains(request)
	parallelizable := IsParallelizable(request, domains)
	complexity := ClassifyComplexity(request, domains)

	debugLog("[plan] request classified: domains=%v parallelizable=%v complexity=%s", domains, parallelizable, complexity)

	tasks := o.decomposer.DecomposeIntoSubtasks(request, domains, o.availableToolNames(ctx))
	waves := GroupByDependencies(tasks)

	return &models.OrchestrationPlan{
		ID:             uuid.New().String()[:8],
		Request:        request,
		Complexity:     complexity,
		Parallelizable: parallelizable,
		Domains:        domains,
		Tasks:          tasks,
		Waves:          waves,
		CreatedAt:      time.Now(),
	}
}

// availableToolNames asks the proxy what tools exist. Failures are logged
// and treated as "no restriction"; plan creation never fails on the proxy.
func (o *Orchestrator) availableToolNames(ctx context.Context) []string {
	if o.tools == nil {
		return nil
	}

	tools, err := o.tools.AvailableTools(ctx, "")
	if err != nil {
		debugLog("[plan] listing proxy tools failed, using profile defaults: %v", err)
		return nil
	}

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}

// Execute runs every wave of the plan and synthesizes the final answer.
// Task failures are contained per task; Execute itself only fails on a nil
// plan.
func (o *Orchestrator) Execute(ctx context.Context, plan *models.OrchestrationPlan) (*models.OrchestrationResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil orchestration plan")
	}

	start := time.Now()
	o.emitter.Emit(models.Event{
		Type:    models.EventOrchestrationStarted,
		Message: fmt.Sprintf("%d tasks in %d waves", len(plan.Tasks), len(plan.Waves)),
	})

	var results []*models.SubagentResult
	if plan.Parallelizable && len(plan.Waves) > 1 {
		results = o.executeWithDependencyGroups(ctx, plan)
	} else {
		results = o.executeSequential(ctx, plan)
	}

	o.emitter.Emit(models.Event{Type: models.EventOrchestrationSynthesizing})
	synthesis := o.synthesizer.Synthesize(ctx, plan.Request, results)

	duration := time.Since(start)
	result := &models.OrchestrationResult{
		Plan:            plan,
		Results:         results,
		Synthesis:       synthesis,
		Duration:        duration,
		ParallelSpeedup: speedup(results, duration),
	}
	for _, res := range results {
		result.Usage.Add(res.Usage.PromptTokens, res.Usage.CompletionTokens)
	}

	o.emitter.Emit(models.Event{
		Type:     models.EventOrchestrationCompleted,
		Message:  fmt.Sprintf("%d/%d tasks succeeded", result.SucceededCount(), len(results)),
		Duration: duration,
	})

	return result, nil
}

// Orchestrate is the combined plan-then-execute entry point.
func (o *Orchestrator) Orchestrate(ctx context.Context, request string) (*models.OrchestrationResult, error) {
	return o.Execute(ctx, o.CreatePlan(ctx, request))
}

// executeWithDependencyGroups runs waves in order, tasks within each wave
// concurrently. previousResults grows only between waves, so a task can
// read results strictly from earlier waves without locking.
func (o *Orchestrator) executeWithDependencyGroups(ctx context.Context, plan *models.OrchestrationPlan) []*models.SubagentResult {
	previous := make(map[string]*models.SubagentResult)
	var all []*models.SubagentResult

	for i, wave := range plan.Waves {
		debugLog("[execute] wave %d/%d: %d tasks", i+1, len(plan.Waves), len(wave))
		o.emitStarted(wave)

		results := runWave(ctx, o.runner, wave, previous, o.maxParallel)

		for _, res := range results {
			o.emitCompleted(plan, res)
			previous[res.TaskID] = res
			all = append(all, res)
		}
	}

	return all
}

// executeSequential runs every task one at a time, still respecting wave
// order so dependents see their dependencies' results.
func (o *Orchestrator) executeSequential(ctx context.Context, plan *models.OrchestrationPlan) []*models.SubagentResult {
	previous := make(map[string]*models.SubagentResult)
	var all []*models.SubagentResult

	for _, wave := range plan.Waves {
		for _, task := range wave {
			o.emitStarted([]*models.SubagentTask{task})
			res := runTask(ctx, o.runner, task, previous)
			o.emitCompleted(plan, res)
			all = append(all, res)
		}
		// previousResults stays wave-gated in both execution modes.
		for _, res := range all {
			previous[res.TaskID] = res
		}
	}

	return all
}

func (o *Orchestrator) emitStarted(tasks []*models.SubagentTask) {
	for _, task := range tasks {
		o.emitter.Emit(models.Event{
			Type:     models.EventSubagentStarted,
			TaskID:   task.ID,
			TaskName: task.Name,
			Domain:   task.Domain,
		})
	}
}

func (o *Orchestrator) emitCompleted(plan *models.OrchestrationPlan, res *models.SubagentResult) {
	event := models.Event{
		Type:     models.EventSubagentCompleted,
		TaskID:   res.TaskID,
		Success:  res.Success,
		Duration: res.Duration,
	}
	if task := plan.Task(res.TaskID); task != nil {
		event.TaskName = task.Name
		event.Domain = task.Domain
	}
	if !res.Success {
		event.Message = res.Error
	}
	o.emitter.Emit(event)
}

// Close releases the orchestrator's event channel. Call only after all
// Execute calls have returned.
func (o *Orchestrator) Close() {
	o.emitter.Close()
}

// speedup computes the parallel speedup ratio: the time the tasks would
// have taken back-to-back divided by the time they actually took.
func speedup(results []*models.SubagentResult, wallClock time.Duration) float64 {
	if wallClock <= 0 {
		return 1
	}
	var sum time.Duration
	for _, res := range results {
		sum += res.Duration
	}
	if sum <= 0 {
		return 1
	}
	return float64(sum) / float64(wallClock)
}
