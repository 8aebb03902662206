package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/agenticwork/conductor/pkg/models"
)

// defaultMaxIterations bounds the ReAct loop when a domain profile does not
// override it.
const defaultMaxIterations = 5

// domainTaskPrompt is the template interpolated with a domain's focus label
// and the original request.
const domainTaskPrompt = `Analyze the following request, focusing ONLY on %s aspects. Use your tools to gather concrete data before answering.

Request: %s`

// synthesisTaskPrompt instructs the synthesis task.
const synthesisTaskPrompt = `Combine the findings of all completed domain analyses into one coherent answer for the original request:

%s`

// genericTaskPrompt covers requests that matched no domain.
const genericTaskPrompt = `Analyze and answer the following request:

%s`

// DomainProfile describes how tasks for one domain are built.
type DomainProfile struct {
	// Focus is the human-readable focus label interpolated into prompts.
	Focus string
	// Server is the MCP server hosting this domain's tools.
	Server string
	// Tools is the default tool allowlist.
	Tools []string
	// MaxIterations overrides the ReAct iteration bound. Zero uses default.
	MaxIterations int
}

// defaultDomainProfiles is the built-in per-domain configuration.
// Entries can be overridden via a domains.yaml file (see internal/config).
var defaultDomainProfiles = map[models.Domain]DomainProfile{
	models.DomainAWS: {
		Focus:  "AWS infrastructure and cost",
		Server: "awp_aws",
		Tools:  []string{"get_cost_summary", "list_ec2_instances", "describe_usage"},
	},
	models.DomainAzure: {
		Focus:  "Azure infrastructure and cost",
		Server: "awp_azure",
		Tools:  []string{"get_cost_analysis", "list_resources", "query_monitor"},
	},
	models.DomainGCP: {
		Focus:  "Google Cloud infrastructure and cost",
		Server: "awp_gcp",
		Tools:  []string{"get_billing_summary", "list_projects"},
	},
	models.DomainGitHub: {
		Focus:  "GitHub repository and CI",
		Server: "awp_github",
		Tools:  []string{"search_repositories", "get_pull_request", "list_workflow_runs"},
	},
	models.DomainFinancial: {
		Focus:  "financial and budgeting",
		Server: "awp_web",
		Tools:  []string{"web_search", "fetch_page"},
	},
	models.DomainLegal: {
		Focus:  "legal and compliance",
		Server: "awp_web",
		Tools:  []string{"web_search", "fetch_page"},
	},
	models.DomainTechnical: {
		Focus:  "technical architecture",
		Server: "awp_web",
		Tools:  []string{"web_search", "fetch_page"},
	},
	models.DomainResearch: {
		Focus:  "research and comparison",
		Server: "awp_web",
		Tools:  []string{"web_search", "fetch_page", "summarize_url"},
	},
	models.DomainGeneral: {
		Focus:  "general",
		Server: "awp_web",
		Tools:  []string{"web_search", "fetch_page"},
	},
}

// DecomposerConfig contains configuration options for the Decomposer.
type DecomposerConfig struct {
	// Profiles overrides per-domain profiles. Domains absent from the map
	// use built-in defaults.
	Profiles map[models.Domain]DomainProfile
	// MaxIterations is the default ReAct iteration bound for domain tasks.
	// Zero uses the package default.
	MaxIterations int
	// TaskTimeout is the per-task execution bound. Zero means no timeout.
	TaskTimeout time.Duration
}

// Decomposer turns a classified request into a plan's subtask list.
type Decomposer struct {
	cfg DecomposerConfig
}

// NewDecomposer creates a new Decomposer.
func NewDecomposer(cfg DecomposerConfig) *Decomposer {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	return &Decomposer{cfg: cfg}
}

// profile resolves the effective profile for a domain.
func (d *Decomposer) profile(domain models.Domain) DomainProfile {
	if p, ok := d.cfg.Profiles[domain]; ok {
		return p
	}
	if p, ok := defaultDomainProfiles[domain]; ok {
		return p
	}
	return defaultDomainProfiles[models.DomainGeneral]
}

// DecomposeIntoSubtasks builds one task per detected domain, or a single
// generic task when no domain matched. When more than one domain task is
// created, a synthesis task depending on all of them is appended; keeping
// synthesis as a task lets it flow through dependency grouping like any
// other work.
//
// availableTools, when non-empty, restricts each task's tool list to tools
// the MCP proxy actually advertises.
func (d *Decomposer) DecomposeIntoSubtasks(request string, domains []models.Domain, availableTools []string) []*models.SubagentTask {
	if len(domains) == 0 {
		profile := d.profile(models.DomainGeneral)
		return []*models.SubagentTask{{
			ID:            "general-analysis",
			Name:          "General Analysis",
			Domain:        models.DomainGeneral,
			Server:        profile.Server,
			Tools:         filterTools(profile.Tools, availableTools),
			Prompt:        fmt.Sprintf(genericTaskPrompt, request),
			MaxIterations: d.maxIterations(profile),
			Timeout:       d.cfg.TaskTimeout,
		}}
	}

	tasks := make([]*models.SubagentTask, 0, len(domains)+1)
	for i, domain := range domains {
		profile := d.profile(domain)
		tasks = append(tasks, &models.SubagentTask{
			ID:            fmt.Sprintf("%s-analysis", domain),
			Name:          fmt.Sprintf("%s Analysis", displayName(domain)),
			Domain:        domain,
			Server:        profile.Server,
			Tools:         filterTools(profile.Tools, availableTools),
			Prompt:        fmt.Sprintf(domainTaskPrompt, profile.Focus, request),
			Priority:      i,
			MaxIterations: d.maxIterations(profile),
			Timeout:       d.cfg.TaskTimeout,
		})
	}

	if len(tasks) > 1 {
		dependsOn := make([]string, len(tasks))
		for i, t := range tasks {
			dependsOn[i] = t.ID
		}
		tasks = append(tasks, &models.SubagentTask{
			ID:            "synthesis",
			Name:          "Synthesis",
			Domain:        models.DomainSynthesis,
			Prompt:        fmt.Sprintf(synthesisTaskPrompt, request),
			DependsOn:     dependsOn,
			Priority:      len(tasks),
			MaxIterations: 1,
			Timeout:       d.cfg.TaskTimeout,
		})
	}

	return tasks
}

// maxIterations resolves the iteration bound for a profile.
func (d *Decomposer) maxIterations(profile DomainProfile) int {
	if profile.MaxIterations > 0 {
		return profile.MaxIterations
	}
	return d.cfg.MaxIterations
}

// filterTools intersects a profile's tool list with the tools the proxy
// advertises. An empty available list means no restriction.
func filterTools(tools, available []string) []string {
	if len(available) == 0 {
		return tools
	}

	availableSet := make(map[string]bool, len(available))
	for _, name := range available {
		availableSet[name] = true
	}

	var filtered []string
	for _, name := range tools {
		if availableSet[name] {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// displayName renders a domain for task names (e.g. "aws" -> "AWS").
func displayName(domain models.Domain) string {
	switch domain {
	case models.DomainAWS:
		return "AWS"
	case models.DomainGCP:
		return "GCP"
	case models.DomainGitHub:
		return "GitHub"
	default:
		s := string(domain)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}
