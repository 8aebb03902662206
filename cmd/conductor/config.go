package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticwork/conductor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging the user config,
the project config, and environment variables. API keys are masked.`,
	RunE: showConfig,
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	bold.Println("config files")
	fmt.Printf("  user:    %s\n", config.GetUserConfigPath())
	if project := config.GetProjectConfigPath(); project != "" {
		fmt.Printf("  project: %s\n", project)
	} else {
		dim.Println("  project: (none)")
	}
	fmt.Println()

	bold.Println("anthropic")
	key, _ := config.GetAPIKey(cfg)
	fmt.Printf("  api_key: %s", config.MaskAPIKey(key))
	dim.Printf("  (from %s)\n", config.GetAPIKeySource(cfg))
	fmt.Println()

	bold.Println("aws")
	fmt.Printf("  use_bedrock: %v\n", cfg.AWS.UseBedrock)
	fmt.Printf("  region:      %s\n", orNone(cfg.AWS.Region))
	fmt.Printf("  profile:     %s\n", orNone(cfg.AWS.Profile))
	fmt.Println()

	bold.Println("defaults")
	fmt.Printf("  model:          %s\n", orNone(cfg.Defaults.Model))
	fmt.Printf("  max_parallel:   %d\n", cfg.Defaults.MaxParallel)
	fmt.Printf("  max_iterations: %d\n", cfg.Defaults.MaxIterations)
	fmt.Printf("  task_timeout:   %s\n", cfg.Defaults.TaskTimeout)
	fmt.Println()

	bold.Println("proxy")
	fmt.Printf("  url:     %s\n", cfg.Proxy.URL)
	fmt.Printf("  api_key: %s\n", config.MaskAPIKey(cfg.Proxy.APIKey))
	fmt.Printf("  timeout: %s\n", cfg.Proxy.Timeout)
	fmt.Println()

	bold.Println("history")
	fmt.Printf("  enabled:   %v\n", cfg.History.Enabled)
	fmt.Printf("  retention: %s\n", cfg.History.Retention)

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
