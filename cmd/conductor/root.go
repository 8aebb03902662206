package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conductor",
	Short: "Multi-domain subagent orchestrator",
	Long: `Conductor takes a free-text request, classifies it into domains
(aws, azure, gcp, github, financial, legal, technical, research),
decomposes it into per-domain subagent tasks, and executes them in
dependency-ordered waves - parallel within a wave, sequential across
waves. Each subagent runs a ReAct loop against an LLM with MCP-proxied
tools; a synthesis step combines the findings into one answer.

Core capabilities:
- Keyword-based domain classification and parallelizability detection
- Greedy wave grouping over task dependencies (fail-open on cycles)
- Per-subagent ReAct loops with sequential tool execution
- Deterministic synthesis fallback when the LLM is unavailable
- Run history persisted to a local SQLite database`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
