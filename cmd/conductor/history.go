package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticwork/conductor/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past orchestration runs",
	Long: `Show runs saved in the project state database (.conductor/state.db).

Without arguments, lists recent runs newest first. With a run id, shows
the run's synthesis and per-task breakdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Max runs to list")
}

func showHistory(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	db, err := state.OpenProject(cwd)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate state database: %w", err)
	}

	if len(args) == 1 {
		return showRun(db, args[0])
	}
	return listRuns(db)
}

func listRuns(db *state.DB) error {
	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Printf("%-10s %-20s %-10s %-7s %-9s %s\n", "ID", "WHEN", "TASKS", "OK", "DURATION", "REQUEST")
	for _, run := range runs {
		fmt.Printf("%-10s %-20s %-10d %-7d %-9s %s\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.TaskCount,
			run.Succeeded,
			run.Duration.Round(time.Millisecond),
			truncateRequest(run.Request, 50),
		)
	}
	return nil
}

func showRun(db *state.DB, id string) error {
	run, err := db.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %q not found", id)
	}

	tasks, err := db.GetRunTasks(id)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	bold.Printf("run %s\n", run.ID)
	fmt.Printf("request:    %s\n", run.Request)
	fmt.Printf("when:       %s\n", run.CreatedAt.Local().Format(time.RFC1123))
	fmt.Printf("complexity: %s (parallelizable: %v)\n", run.Complexity, run.Parallelizable)
	fmt.Printf("duration:   %s (%.1fx speedup)\n", run.Duration.Round(time.Millisecond), run.Speedup)
	fmt.Printf("tokens:     %d prompt + %d completion\n", run.Usage.PromptTokens, run.Usage.CompletionTokens)
	fmt.Println()

	for _, task := range tasks {
		if task.Success {
			green.Printf("[ok]   ")
		} else {
			red.Printf("[fail] ")
		}
		fmt.Printf("%s (%s) %s, %d iterations", task.Name, task.Domain,
			task.Duration.Round(time.Millisecond), task.Iterations)
		if len(task.ToolsUsed) > 0 {
			fmt.Printf(", tools: %v", task.ToolsUsed)
		}
		fmt.Println()
		if !task.Success && task.Error != "" {
			fmt.Printf("       %s\n", task.Error)
		}
	}

	if run.Synthesis != "" {
		fmt.Println()
		bold.Println("synthesis")
		fmt.Println(run.Synthesis)
	}
	return nil
}

func truncateRequest(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
