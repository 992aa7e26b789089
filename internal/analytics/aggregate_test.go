package analytics

import (
	"testing"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

func TestSkillFromPrompt(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"/commit -m fix", "commit"},
		{"/git-worktree list", "git-worktree"},
		{"  /deploy\tprod", "deploy"},
		{"/help", ""},
		{"/Clear", ""},
		{"/compact", ""},
		{"commit this", ""},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assertEqual(t, "skill", tt.want, SkillFromPrompt(tt.prompt))
		})
	}
}

func TestTopN(t *testing.T) {
	entries := []domain.UsageEntry{{Name: "a", Count: 3}, {Name: "b", Count: 2}, {Name: "c", Count: 1}}

	assertEqual(t, "top 2", 2, len(TopN(entries, 2)))
	assertEqual(t, "all", 3, len(TopN(entries, 0)))
	assertEqual(t, "more than len", 3, len(TopN(entries, 10)))
}

func TestToolAndSkillUsage(t *testing.T) {
	events := []domain.EventRecord{
		toolEv(domain.EventPreToolUse, "s", "1", "Read", "r1"),
		toolEv(domain.EventPostToolUse, "s", "2", "Read", "r1"),
		promptEv("s", "3", "/plan"),
	}

	assertEqual(t, "Read", 2, usageCount(ToolUsage(events), "Read"))
	assertEqual(t, "plan", 1, usageCount(SkillUsage(events), "plan"))
}
