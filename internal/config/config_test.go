package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Defaults.Model != "" {
		t.Errorf("model must have no default, got %q", cfg.Defaults.Model)
	}

	if cfg.Defaults.MaxParallel != 4 {
		t.Errorf("expected default max_parallel 4, got %d", cfg.Defaults.MaxParallel)
	}

	if cfg.Defaults.MaxIterations != 5 {
		t.Errorf("expected default max_iterations 5, got %d", cfg.Defaults.MaxIterations)
	}

	if cfg.Defaults.TaskTimeout != 2*time.Minute {
		t.Errorf("expected default task_timeout 2m, got %v", cfg.Defaults.TaskTimeout)
	}

	if cfg.Proxy.URL != "http://localhost:8100" {
		t.Errorf("expected default proxy url, got %q", cfg.Proxy.URL)
	}

	if cfg.TUI.RefreshRate != 100*time.Millisecond {
		t.Errorf("expected refresh rate 100ms, got %v", cfg.TUI.RefreshRate)
	}

	if !cfg.History.Enabled {
		t.Error("expected history.enabled to be true")
	}
}

func TestLoadFromPath(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
anthropic:
  api_key: test-key
aws:
  use_bedrock: true
  region: us-west-2
defaults:
  model: claude-sonnet-4-20250514
  max_parallel: 2
  max_iterations: 7
  task_timeout: 5m
proxy:
  url: http://proxy.internal:8100
  api_key: proxy-secret
tui:
  refresh_rate: 200ms
history:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("api_key = %q", cfg.Anthropic.APIKey)
	}
	if !cfg.AWS.UseBedrock || cfg.AWS.Region != "us-west-2" {
		t.Errorf("aws = %+v", cfg.AWS)
	}
	if cfg.Defaults.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", cfg.Defaults.Model)
	}
	if cfg.Defaults.MaxParallel != 2 {
		t.Errorf("max_parallel = %d", cfg.Defaults.MaxParallel)
	}
	if cfg.Defaults.MaxIterations != 7 {
		t.Errorf("max_iterations = %d", cfg.Defaults.MaxIterations)
	}
	if cfg.Defaults.TaskTimeout != 5*time.Minute {
		t.Errorf("task_timeout = %v", cfg.Defaults.TaskTimeout)
	}
	if cfg.Proxy.URL != "http://proxy.internal:8100" {
		t.Errorf("proxy url = %q", cfg.Proxy.URL)
	}
	if cfg.Proxy.APIKey != "proxy-secret" {
		t.Errorf("proxy api_key = %q", cfg.Proxy.APIKey)
	}
	if cfg.TUI.RefreshRate != 200*time.Millisecond {
		t.Errorf("refresh_rate = %v", cfg.TUI.RefreshRate)
	}
	if cfg.History.Enabled {
		t.Error("history.enabled should be false")
	}
}

func TestLoadFromPathPartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("defaults:\n  model: m1\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Defaults.Model != "m1" {
		t.Errorf("model = %q", cfg.Defaults.Model)
	}
	if cfg.Defaults.MaxParallel != 4 {
		t.Errorf("unset max_parallel should keep default, got %d", cfg.Defaults.MaxParallel)
	}
	if cfg.Proxy.URL != "http://localhost:8100" {
		t.Errorf("unset proxy url should keep default, got %q", cfg.Proxy.URL)
	}
}

func TestLoadFromPathExpandsEnvReferences(t *testing.T) {
	t.Setenv("CONDUCTOR_TEST_KEY", "expanded-key")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "anthropic:\n  api_key: ${CONDUCTOR_TEST_KEY}\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Anthropic.APIKey != "expanded-key" {
		t.Errorf("api_key = %q, want expanded value", cfg.Anthropic.APIKey)
	}
}
