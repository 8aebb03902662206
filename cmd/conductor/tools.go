package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenticwork/conductor/internal/config"
	"github.com/agenticwork/conductor/internal/mcpproxy"
)

var toolsServer string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List tools available through the MCP proxy",
	Long: `List the tools the MCP proxy currently advertises, grouped by server.

Use --server to restrict the listing to one server.`,
	RunE: listTools,
}

func init() {
	toolsCmd.Flags().StringVar(&toolsServer, "server", "", "List tools for one server only")
}

func listTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	proxy, err := mcpproxy.NewClient(mcpproxy.ClientConfig{
		BaseURL: cfg.Proxy.URL,
		APIKey:  cfg.Proxy.APIKey,
		Timeout: cfg.Proxy.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create proxy client: %w", err)
	}

	ctx := cmd.Context()

	health, err := proxy.CheckHealth(ctx)
	if err != nil {
		return fmt.Errorf("proxy at %s is not reachable: %w", cfg.Proxy.URL, err)
	}
	fmt.Printf("proxy %s: %s (%d/%d servers running)\n\n",
		cfg.Proxy.URL, health.Status, health.Servers.Running, health.Servers.Total)

	tools, err := proxy.AvailableTools(ctx, toolsServer)
	if err != nil {
		return err
	}
	if len(tools) == 0 {
		fmt.Println("no tools available")
		return nil
	}

	byServer := make(map[string][]mcpproxy.Tool)
	for _, tool := range tools {
		byServer[tool.Server] = append(byServer[tool.Server], tool)
	}
	servers := make([]string, 0, len(byServer))
	for server := range byServer {
		servers = append(servers, server)
	}
	sort.Strings(servers)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	for _, server := range servers {
		bold.Println(server)
		group := byServer[server]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		for _, tool := range group {
			fmt.Printf("  %s", tool.Name)
			if tool.Description != "" {
				dim.Printf("  %s", tool.Description)
			}
			fmt.Println()
		}
		fmt.Println()
	}

	return nil
}
