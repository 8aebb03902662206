package orchestrator

import (
	"reflect"
	"testing"

	"github.com/agenticwork/conductor/pkg/models"
)

func TestDetectDomains(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    []models.Domain
	}{
		{
			name:    "multi-cloud comparison",
			request: "Compare AWS and Azure costs for Q3",
			want:    []models.Domain{models.DomainAWS, models.DomainAzure},
		},
		{
			name:    "single cloud",
			request: "What's our EC2 spend this month?",
			want:    []models.Domain{models.DomainAWS},
		},
		{
			name:    "greeting matches nothing",
			request: "Hello, how are you?",
			want:    nil,
		},
		{
			name:    "case insensitive",
			request: "list my LAMBDA functions",
			want:    []models.Domain{models.DomainAWS},
		},
		{
			name:    "financial and legal",
			request: "Review the contract and check it against our budget",
			want:    []models.Domain{models.DomainFinancial, models.DomainLegal},
		},
		{
			name:    "github",
			request: "summarize the open pull request backlog",
			want:    []models.Domain{models.DomainGitHub},
		},
		{
			name:    "table order is stable",
			request: "azure aks cluster vs aws ec2",
			want:    []models.Domain{models.DomainAWS, models.DomainAzure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDomains(tt.request)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectDomains(%q) = %v, want %v", tt.request, got, tt.want)
			}
		})
	}
}

func TestIsParallelizable(t *testing.T) {
	tests := []struct {
		name    string
		request string
		domains []models.Domain
		want    bool
	}{
		{
			name:    "two domains",
			request: "Compare AWS and Azure costs for Q3",
			domains: []models.Domain{models.DomainAWS, models.DomainAzure},
			want:    true,
		},
		{
			name:    "single domain no signal",
			request: "What's our EC2 spend this month?",
			domains: []models.Domain{models.DomainAWS},
			want:    false,
		},
		{
			name:    "explicit signal overrides single domain",
			request: "check ec2 and rds health at the same time",
			domains: []models.Domain{models.DomainAWS},
			want:    true,
		},
		{
			name:    "no domains no signal",
			request: "Hello, how are you?",
			domains: nil,
			want:    false,
		},
		{
			name:    "due diligence phrase",
			request: "run due diligence on the vendor",
			domains: nil,
			want:    true,
		},
		{
			name:    "simultaneous is not a substring trap",
			request: "this request mentions simultaneousness of nothing",
			domains: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsParallelizable(tt.request, tt.domains); got != tt.want {
				t.Errorf("IsParallelizable(%q) = %v, want %v", tt.request, got, tt.want)
			}
		})
	}
}

func TestClassifyComplexity(t *testing.T) {
	tests := []struct {
		name    string
		request string
		domains []models.Domain
		want    models.Complexity
	}{
		{
			name:    "no domains",
			request: "Hello, how are you?",
			want:    models.ComplexitySimple,
		},
		{
			name:    "one domain",
			request: "What's our EC2 spend this month?",
			domains: []models.Domain{models.DomainAWS},
			want:    models.ComplexitySimple,
		},
		{
			name:    "two domains",
			request: "Compare AWS and Azure costs for Q3",
			domains: []models.Domain{models.DomainAWS, models.DomainAzure},
			want:    models.ComplexityModerate,
		},
		{
			name:    "explicit signal alone",
			request: "do these things in parallel",
			want:    models.ComplexityModerate,
		},
		{
			name:    "three domains",
			request: "aws azure gcp",
			domains: []models.Domain{models.DomainAWS, models.DomainAzure, models.DomainGCP},
			want:    models.ComplexityComplex,
		},
		{
			name:    "two domains with explicit signal",
			request: "audit aws and azure concurrently",
			domains: []models.Domain{models.DomainAWS, models.DomainAzure},
			want:    models.ComplexityComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyComplexity(tt.request, tt.domains); got != tt.want {
				t.Errorf("ClassifyComplexity(%q, %v) = %v, want %v", tt.request, tt.domains, got, tt.want)
			}
		})
	}
}
