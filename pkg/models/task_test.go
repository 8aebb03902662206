package models

import (
	"testing"
	"time"
)

func TestDomainValid(t *testing.T) {
	tests := []struct {
		domain Domain
		want   bool
	}{
		{DomainAWS, true},
		{DomainAzure, true},
		{DomainGCP, true},
		{DomainGitHub, true},
		{DomainFinancial, true},
		{DomainLegal, true},
		{DomainTechnical, true},
		{DomainResearch, true},
		{DomainGeneral, true},
		{DomainSynthesis, true},
		{Domain("kubernetes"), false},
		{Domain(""), false},
	}

	for _, tt := range tests {
		if got := tt.domain.Valid(); got != tt.want {
			t.Errorf("Domain(%q).Valid() = %v, want %v", tt.domain, got, tt.want)
		}
	}
}

func TestSubagentTaskIsSynthesis(t *testing.T) {
	task := &SubagentTask{ID: "synthesis", Domain: DomainSynthesis}
	if !task.IsSynthesis() {
		t.Error("synthesis task should report IsSynthesis")
	}

	task = &SubagentTask{ID: "aws-analysis", Domain: DomainAWS}
	if task.IsSynthesis() {
		t.Error("domain task should not report IsSynthesis")
	}
}

func TestTokenUsageAdd(t *testing.T) {
	var u TokenUsage
	u.Add(100, 50)
	u.Add(200, 25)

	if u.PromptTokens != 300 {
		t.Errorf("PromptTokens = %d, want 300", u.PromptTokens)
	}
	if u.CompletionTokens != 75 {
		t.Errorf("CompletionTokens = %d, want 75", u.CompletionTokens)
	}
	if u.TotalTokens != 375 {
		t.Errorf("TotalTokens = %d, want 375", u.TotalTokens)
	}
}

func TestSubagentTaskTimeoutZeroMeansNone(t *testing.T) {
	task := &SubagentTask{ID: "t1"}
	if task.Timeout != 0 {
		t.Errorf("zero-value Timeout = %v, want 0", task.Timeout)
	}

	task.Timeout = 30 * time.Second
	if task.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", task.Timeout)
	}
}
