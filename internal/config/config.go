// Package config handles configuration loading and management for Conductor.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for Conductor.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Proxy     ProxyConfig     `mapstructure:"proxy"`
	TUI       TUIConfig       `mapstructure:"tui"`
	History   HistoryConfig   `mapstructure:"history"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AWSConfig holds AWS Bedrock settings.
type AWSConfig struct {
	// UseBedrock routes LLM calls through AWS Bedrock instead of the
	// Anthropic API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	Region     string `mapstructure:"region"`
	Profile    string `mapstructure:"profile"`
}

// DefaultsConfig holds default values for Conductor runs.
type DefaultsConfig struct {
	// Model is the LLM model id. Required; there is no safe default to
	// run subagents against.
	Model string `mapstructure:"model"`
	// MaxParallel bounds concurrent subagents within a wave.
	MaxParallel int `mapstructure:"max_parallel"`
	// MaxIterations is the per-task ReAct iteration bound.
	MaxIterations int `mapstructure:"max_iterations"`
	// TaskTimeout is the per-task execution bound.
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
}

// ProxyConfig holds MCP proxy connection settings.
type ProxyConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// HistoryConfig holds run-history persistence settings.
type HistoryConfig struct {
	// Enabled toggles saving runs to the state database.
	Enabled bool `mapstructure:"enabled"`
	// Retention is how long runs are kept before purging.
	Retention time.Duration `mapstructure:"retention"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, CONDUCTOR_MODEL, MCP_PROXY_URL)
// 2. Project config (.conductor.yaml in current directory or parent)
// 3. User config (~/.config/conductor/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("")

	// Map specific environment variables
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("defaults.model", "CONDUCTOR_MODEL")
	v.BindEnv("proxy.url", "MCP_PROXY_URL")
	v.BindEnv("proxy.api_key", "MCP_PROXY_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Proxy.APIKey = expandEnv(cfg.Proxy.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Proxy.APIKey = expandEnv(cfg.Proxy.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("aws.use_bedrock", cfg.AWS.UseBedrock)
	v.Set("aws.region", cfg.AWS.Region)
	v.Set("aws.profile", cfg.AWS.Profile)
	v.Set("defaults.model", cfg.Defaults.Model)
	v.Set("defaults.max_parallel", cfg.Defaults.MaxParallel)
	v.Set("defaults.max_iterations", cfg.Defaults.MaxIterations)
	v.Set("defaults.task_timeout", cfg.Defaults.TaskTimeout.String())
	v.Set("proxy.url", cfg.Proxy.URL)
	v.Set("proxy.api_key", cfg.Proxy.APIKey)
	v.Set("proxy.timeout", cfg.Proxy.Timeout.String())
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.retention", cfg.History.Retention.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Anthropic defaults
	v.SetDefault("anthropic.api_key", "")

	// Bedrock defaults
	v.SetDefault("aws.use_bedrock", false)
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")

	// Run defaults. Model intentionally has no default.
	v.SetDefault("defaults.model", "")
	v.SetDefault("defaults.max_parallel", 4)
	v.SetDefault("defaults.max_iterations", 5)
	v.SetDefault("defaults.task_timeout", "2m")

	// Proxy defaults
	v.SetDefault("proxy.url", "http://localhost:8100")
	v.SetDefault("proxy.api_key", "")
	v.SetDefault("proxy.timeout", "2m")

	// TUI defaults
	v.SetDefault("tui.refresh_rate", "100ms")

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.retention", "720h")
}

// getUserConfigDir returns the XDG config directory for Conductor.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "conductor")
	}

	// Fall back to ~/.config/conductor
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "conductor")
	}
	return filepath.Join(home, ".config", "conductor")
}

// findProjectConfig searches for .conductor.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".conductor.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			MaxParallel:   4,
			MaxIterations: 5,
			TaskTimeout:   2 * time.Minute,
		},
		Proxy: ProxyConfig{
			URL:     "http://localhost:8100",
			Timeout: 2 * time.Minute,
		},
		TUI: TUIConfig{
			RefreshRate: 100 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled:   true,
			Retention: 720 * time.Hour,
		},
	}
}
