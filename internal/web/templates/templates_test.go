package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

func TestDashboardContent_EscapesInput(t *testing.T) {
	data := DashboardData{
		Now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Summary: domain.Summary{
			SessionCount: 1,
			Sessions: []domain.SessionState{
				{SessionID: "<img src=x>", Cwd: "/tmp/<b>", LastTs: "2026-10-17T11:59:00.000Z", IsLive: true},
			},
			ToolUsage: []domain.UsageEntry{{Name: "mcp__<x>", Count: 2}},
		},
	}

	var buf bytes.Buffer
	if err := DashboardContent(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, raw := range []string{"<img", "<b>", "mcp__<x>"} {
		if strings.Contains(out, raw) {
			t.Errorf("unescaped %q in output", raw)
		}
	}
	if !strings.Contains(out, "just now") {
		t.Error("expected relative last-seen time")
	}
}

func TestUsageBars(t *testing.T) {
	bars := usageBars([]domain.UsageEntry{{Name: "Bash", Count: 8}, {Name: "Read", Count: 2}})

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Percent != 100 || bars[1].Percent != 25 {
		t.Errorf("unexpected widths: %+v", bars)
	}
	if len(usageBars(nil)) != 0 {
		t.Error("expected no bars for empty usage")
	}
}

func TestBuildURLs(t *testing.T) {
	if got := string(buildDashboardURL("")); got != "/" {
		t.Errorf("empty file: got %q", got)
	}
	if got := string(buildDashboardURL("hook-events.2026-10-16.jsonl")); got != "/?file=hook-events.2026-10-16.jsonl" {
		t.Errorf("file: got %q", got)
	}
	if got := string(buildSessionURL("a b", "")); got != "/api/sessions/a%20b" {
		t.Errorf("session: got %q", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[string]string{
		domain.StatusLive:  "status-live",
		domain.StatusStale: "status-stale",
		domain.StatusEnded: "status-ended",
	}
	for status, want := range tests {
		if got := statusClass(status); got != want {
			t.Errorf("%s: expected %s, got %s", status, want, got)
		}
	}
}
