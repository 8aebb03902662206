package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticwork/conductor/internal/config"
	"github.com/agenticwork/conductor/internal/llm"
	"github.com/agenticwork/conductor/internal/mcpproxy"
	"github.com/agenticwork/conductor/internal/orchestrator"
	conductorsignal "github.com/agenticwork/conductor/internal/signal"
	"github.com/agenticwork/conductor/internal/state"
	"github.com/agenticwork/conductor/internal/subagent"
	"github.com/agenticwork/conductor/internal/tui"
	"github.com/agenticwork/conductor/pkg/models"
)

var (
	runSequential  bool
	runTUI         bool
	runNoLLM       bool
	runNoSave      bool
	runDebugLog    bool
	runMaxParallel int
	runTimeout     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <request>",
	Short: "Run a request through the subagent orchestrator",
	Long: `Run a free-text request through the orchestrator.

The request is classified into domains and decomposed into one subagent
task per domain (plus a synthesis task when several domains match).
Independent tasks run concurrently within a wave; a task only sees the
results of waves that fully settled before it started.

Examples:
  conductor run "Compare AWS and Azure costs for Q3"
  conductor run --tui "Audit our GitHub CI pipelines and EC2 usage"
  conductor run --sequential "What's our EC2 spend this month?"

Use --no-llm to exercise the degraded path: each subagent performs a few
direct tool calls against the MCP proxy without LLM reasoning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRequest,
}

func init() {
	runCmd.Flags().BoolVar(&runSequential, "sequential", false, "Run all tasks one at a time, even for parallelizable plans")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Show a live TUI of subagent progress")
	runCmd.Flags().BoolVar(&runNoLLM, "no-llm", false, "Skip the LLM: run direct tool calls only (degraded mode)")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not persist this run to history")
	runCmd.Flags().BoolVar(&runDebugLog, "debug-log", false, "Write a debug log to .conductor/logs")
	runCmd.Flags().IntVar(&runMaxParallel, "max-parallel", 0, "Max concurrent subagents per wave (0 uses config)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Per-task timeout (0 uses config)")
}

func runRequest(cmd *cobra.Command, args []string) error {
	request := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyRunFlags(cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Per-domain overrides from domains.yaml, if present.
	profiles, err := loadDomainProfiles()
	if err != nil {
		return err
	}

	proxy, err := mcpproxy.NewClient(mcpproxy.ClientConfig{
		BaseURL: cfg.Proxy.URL,
		APIKey:  cfg.Proxy.APIKey,
		Timeout: cfg.Proxy.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create proxy client: %w", err)
	}

	// A missing model is fatal here, before any work starts; the only
	// configuration that runs without a model is explicit --no-llm.
	var completer llm.Completer
	var client *llm.Client
	if !runNoLLM {
		apiKey, _ := config.GetAPIKey(cfg)
		client, err = llm.NewClient(llm.ClientConfig{
			Model:         cfg.Defaults.Model,
			APIKey:        apiKey,
			UseAWSBedrock: cfg.AWS.UseBedrock,
			AWSRegion:     cfg.AWS.Region,
			AWSProfile:    cfg.AWS.Profile,
		})
		if err != nil {
			return err
		}
		completer = client
	}

	var logger *orchestrator.DebugLogger
	if runDebugLog {
		logger = orchestrator.NewDebugLoggerForDir(cwd)
		defer logger.Close()
	}

	stopWatcher, err := conductorsignal.NewWatcher(cwd)
	if err != nil {
		return fmt.Errorf("create signal watcher: %w", err)
	}
	defer stopWatcher.Close()
	stopWatcher.Clear()

	// The executor emits through the orchestrator; the orchestrator is
	// created after the executor, so route through a late-bound pointer.
	var orch *orchestrator.Orchestrator
	emit := func(event models.Event) {
		if orch != nil {
			orch.Emit(event)
		}
	}

	executor, err := subagent.NewExecutor(subagent.Config{
		LLM:      completer,
		Tools:    proxy,
		Emit:     emit,
		Stopped:  stopWatcher.ShouldStop,
		DebugLog: logger.Log,
	})
	if err != nil {
		return fmt.Errorf("create executor: %w", err)
	}

	synthesizer := subagent.NewSynthesizer(subagent.SynthesizerConfig{
		LLM:      completer,
		DebugLog: logger.Log,
	})

	orch, err = orchestrator.New(orchestrator.Config{
		Runner:      executor,
		Synthesizer: synthesizer,
		Decomposer: orchestrator.NewDecomposer(orchestrator.DecomposerConfig{
			Profiles:      profiles,
			MaxIterations: cfg.Defaults.MaxIterations,
			TaskTimeout:   cfg.Defaults.TaskTimeout,
		}),
		Tools:       proxy,
		MaxParallel: cfg.Defaults.MaxParallel,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer orch.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt, shutting down...")
		cancel()
	}()

	plan := orch.CreatePlan(ctx, request)
	if runSequential {
		plan.Parallelizable = false
	}

	result, err := executePlan(ctx, orch, plan, request)
	if err != nil {
		return err
	}

	printResult(result, client)

	if cfg.History.Enabled && !runNoSave {
		if err := saveRun(cwd, result, cfg.History.Retention); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save run history: %v\n", err)
		}
	}

	return nil
}

// applyRunFlags folds command-line overrides into the loaded config.
func applyRunFlags(cfg *config.Config) {
	if runMaxParallel > 0 {
		cfg.Defaults.MaxParallel = runMaxParallel
	}
	if runTimeout > 0 {
		cfg.Defaults.TaskTimeout = runTimeout
	}
}

// loadDomainProfiles reads domains.yaml overrides and applies keyword
// replacements to the classifier.
func loadDomainProfiles() (map[models.Domain]orchestrator.DomainProfile, error) {
	overrides, err := config.LoadDomainOverrides(config.FindDomainsFile())
	if err != nil {
		return nil, fmt.Errorf("load domain overrides: %w", err)
	}

	profiles := make(map[models.Domain]orchestrator.DomainProfile, len(overrides))
	keywords := make(map[models.Domain][]string)
	for name, o := range overrides {
		domain := models.Domain(name)
		if !domain.Valid() {
			return nil, fmt.Errorf("domains.yaml: unknown domain %q", name)
		}
		if o.Focus != "" || o.Server != "" || len(o.Tools) > 0 || o.MaxIterations > 0 {
			profiles[domain] = orchestrator.DomainProfile{
				Focus:         o.Focus,
				Server:        o.Server,
				Tools:         o.Tools,
				MaxIterations: o.MaxIterations,
			}
		}
		if len(o.Keywords) > 0 {
			keywords[domain] = o.Keywords
		}
	}
	orchestrator.SetKeywordOverrides(keywords)

	return profiles, nil
}

// executePlan runs the plan either headless (printing events) or under the
// live TUI.
func executePlan(ctx context.Context, orch *orchestrator.Orchestrator, plan *models.OrchestrationPlan, request string) (*models.OrchestrationResult, error) {
	if runTUI {
		return executeWithTUI(ctx, orch, plan, request)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		printEvents(orch.Events())
	}()

	result, err := orch.Execute(ctx, plan)
	orch.Close()
	<-done
	return result, err
}

// executeWithTUI drives the bubbletea view from the event channel while the
// orchestration runs in the background.
func executeWithTUI(ctx context.Context, orch *orchestrator.Orchestrator, plan *models.OrchestrationPlan, request string) (*models.OrchestrationResult, error) {
	program := tea.NewProgram(tui.NewRunModel(request, orch.Events()))

	var (
		result *models.OrchestrationResult
		runErr error
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, runErr = orch.Execute(ctx, plan)
		orch.Close()
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	wg.Wait()
	return result, runErr
}

// printEvents renders orchestration events as they arrive.
func printEvents(events <-chan models.Event) {
	dim := color.New(color.Faint)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for event := range events {
		switch event.Type {
		case models.EventOrchestrationStarted:
			fmt.Printf("orchestrating: %s\n", event.Message)
		case models.EventSubagentStarted:
			fmt.Printf("  %s started (%s)\n", event.TaskName, event.Domain)
		case models.EventSubagentToolCall:
			dim.Printf("    tool: %s\n", event.Tool)
		case models.EventSubagentCompleted:
			if event.Success {
				green.Printf("  %s done in %s\n", event.TaskName, event.Duration.Round(time.Millisecond))
			} else {
				red.Printf("  %s failed: %s\n", event.TaskName, event.Message)
			}
		case models.EventOrchestrationSynthesizing:
			fmt.Println("synthesizing final answer...")
		}
	}
}

// printResult renders the final narrative and the run summary.
func printResult(result *models.OrchestrationResult, client *llm.Client) {
	bold := color.New(color.Bold)

	fmt.Println()
	fmt.Println(result.Synthesis)
	fmt.Println()

	bold.Printf("run %s: ", result.Plan.ID)
	fmt.Printf("%d/%d tasks succeeded in %s",
		result.SucceededCount(), len(result.Results), result.Duration.Round(time.Millisecond))
	if result.Plan.Parallelizable && len(result.Plan.Waves) > 1 {
		fmt.Printf(" (%.1fx speedup)", result.ParallelSpeedup)
	}
	fmt.Println()

	if result.Usage.TotalTokens > 0 {
		fmt.Printf("tokens: %d prompt + %d completion", result.Usage.PromptTokens, result.Usage.CompletionTokens)
		if client != nil {
			fmt.Printf(" (~$%.4f)", client.Tracker().Cost())
		}
		fmt.Println()
	}
}

// saveRun persists the run and prunes expired history.
func saveRun(projectRoot string, result *models.OrchestrationResult, retention time.Duration) error {
	db, err := state.OpenProject(projectRoot)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	if err := db.SaveRun(result); err != nil {
		return err
	}
	if retention > 0 {
		if _, err := db.PurgeOldRuns(retention); err != nil {
			return err
		}
	}
	return nil
}
