package analytics

import (
	"testing"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

func ev(event, session, ts string) domain.EventRecord {
	return domain.EventRecord{Event: event, SessionID: session, Ts: ts}
}

func toolEv(event, session, ts, tool, useID string) domain.EventRecord {
	e := ev(event, session, ts)
	e.Data = &domain.EventData{ToolName: tool, ToolUseID: useID}
	return e
}

func skillEv(session, ts, skill, useID string) domain.EventRecord {
	e := toolEv(domain.EventPreToolUse, session, ts, SkillTool, useID)
	e.Data.ToolInputSummary = skill
	return e
}

func promptEv(session, ts, prompt string) domain.EventRecord {
	e := ev(domain.EventUserPromptSubmit, session, ts)
	e.Data = &domain.EventData{Prompt: prompt}
	return e
}

func stopEv(session, ts string, active bool) domain.EventRecord {
	e := ev(domain.EventStop, session, ts)
	e.Data = &domain.EventData{StopHookActive: active}
	return e
}

func usageCount(entries []domain.UsageEntry, name string) int {
	for _, e := range entries {
		if e.Name == name {
			return e.Count
		}
	}
	return 0
}

func assertEqual[T comparable](t *testing.T, name string, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}
