package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DomainOverride customizes one domain in domains.yaml. Zero-valued fields
// leave the built-in default for that aspect untouched.
type DomainOverride struct {
	// Focus is the focus label interpolated into the domain's prompts.
	Focus string `yaml:"focus"`
	// Server is the MCP server id hosting the domain's tools.
	Server string `yaml:"server"`
	// Tools is the default tool allowlist.
	Tools []string `yaml:"tools"`
	// MaxIterations overrides the ReAct iteration bound.
	MaxIterations int `yaml:"max_iterations"`
	// Keywords replaces the domain's classification keywords.
	Keywords []string `yaml:"keywords"`
}

type domainsFile struct {
	Domains map[string]DomainOverride `yaml:"domains"`
}

// LoadDomainOverrides reads a domains.yaml file. A missing file is not an
// error; it returns an empty map.
func LoadDomainOverrides(path string) (map[string]DomainOverride, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]DomainOverride{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file domainsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.Domains == nil {
		file.Domains = map[string]DomainOverride{}
	}
	return file.Domains, nil
}

// FindDomainsFile returns the effective domains.yaml path: the project file
// (.conductor/domains.yaml next to the project config) if present, else the
// user config directory's domains.yaml. The returned path may not exist.
func FindDomainsFile() string {
	if cwd, err := os.Getwd(); err == nil {
		project := filepath.Join(cwd, ".conductor", "domains.yaml")
		if _, err := os.Stat(project); err == nil {
			return project
		}
	}
	return filepath.Join(getUserConfigDir(), "domains.yaml")
}
