package orchestrator

import (
	"regexp"
	"strings"

	"github.com/agenticwork/conductor/pkg/models"
)

// domainKeywords maps each domain to the keywords that select it.
// Detection is case-insensitive substring matching with no ranking; a
// request may match several domains at once, which is what drives
// parallelization downstream.
var domainKeywords = []struct {
	Domain   models.Domain
	Keywords []string
}{
	{models.DomainAWS, []string{
		"aws",
		"amazon web services",
		"ec2",
		"s3 bucket",
		"lambda",
		"cloudformation",
		"dynamodb",
		"cloudwatch",
	}},
	{models.DomainAzure, []string{
		"azure",
		"entra",
		"aks",
		"cosmos db",
		"app service",
		"resource group",
	}},
	{models.DomainGCP, []string{
		"gcp",
		"google cloud",
		"bigquery",
		"gke",
		"cloud run",
	}},
	{models.DomainGitHub, []string{
		"github",
		"pull request",
		"repository",
		"code review",
		"ci pipeline",
	}},
	{models.DomainFinancial, []string{
		"budget",
		"invoice",
		"billing",
		"financial",
		"forecast",
		"roi",
		"expense report",
	}},
	{models.DomainLegal, []string{
		"legal",
		"compliance",
		"contract",
		"gdpr",
		"regulatory",
		"data residency",
	}},
	{models.DomainTechnical, []string{
		"architecture",
		"refactor",
		"performance tuning",
		"scalability",
		"latency",
		"tech stack",
	}},
	{models.DomainResearch, []string{
		"research",
		"investigate",
		"market analysis",
		"whitepaper",
		"vendor evaluation",
	}},
}

// parallelPatterns signal explicit parallel intent in a request, independent
// of how many domains were detected.
var parallelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsimultaneous(?:ly)?\b`),
	regexp.MustCompile(`(?i)\bin parallel\b`),
	regexp.MustCompile(`(?i)\bat the same time\b`),
	regexp.MustCompile(`(?i)\bconcurrently\b`),
	regexp.MustCompile(`(?i)\bdue diligence\b`),
	regexp.MustCompile(`(?i)\bcompare\s+across\b`),
	regexp.MustCompile(`(?i)\bside[- ]by[- ]side\b`),
}

// SetKeywordOverrides replaces the keyword lists for the named domains.
// Call at startup, before any classification; the table is not guarded.
func SetKeywordOverrides(overrides map[models.Domain][]string) {
	for i := range domainKeywords {
		if kws, ok := overrides[domainKeywords[i].Domain]; ok && len(kws) > 0 {
			domainKeywords[i].Keywords = kws
		}
	}
}

// DetectDomains scans the request against the keyword table and returns
// every matching domain, in table order. A request with no matches returns
// an empty list; downstream falls back to a single generic task.
func DetectDomains(request string) []models.Domain {
	lower := strings.ToLower(request)

	var detected []models.Domain
	for _, entry := range domainKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, entry.Domain)
				break
			}
		}
	}
	return detected
}

// IsParallelizable reports whether a request should use the concurrent
// execution path: either two or more domains were detected, or the raw
// text signals explicit parallel intent.
func IsParallelizable(request string, domains []models.Domain) bool {
	if len(domains) >= 2 {
		return true
	}
	for _, pattern := range parallelPatterns {
		if pattern.MatchString(request) {
			return true
		}
	}
	return false
}

// ClassifyComplexity assigns a complexity tier from the detection results.
// The tier is recorded on the plan for observability and run history; it
// does not change execution semantics.
func ClassifyComplexity(request string, domains []models.Domain) models.Complexity {
	explicit := false
	for _, pattern := range parallelPatterns {
		if pattern.MatchString(request) {
			explicit = true
			break
		}
	}

	switch {
	case len(domains) >= 3 || (explicit && len(domains) >= 2):
		return models.ComplexityComplex
	case len(domains) == 2 || explicit:
		return models.ComplexityModerate
	default:
		return models.ComplexitySimple
	}
}
