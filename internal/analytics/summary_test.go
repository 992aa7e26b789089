package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil, testNow)

	assertEqual(t, "TotalEvents", 0, s.TotalEvents)
	assertEqual(t, "SessionCount", 0, s.SessionCount)
	assertEqual(t, "OrphanCount", 0, s.OrphanCount)
	assertEqual(t, "InterruptCount", 0, s.InterruptCount)
	if s.Sessions == nil || s.ToolUsage == nil || s.SkillUsage == nil || s.OrphanIDs == nil || s.Interrupts == nil {
		t.Errorf("expected empty non-nil collections, got %+v", s)
	}
}

func TestBuildSummary_BasicLifecycle(t *testing.T) {
	events := []domain.EventRecord{
		ev(domain.EventSessionStart, "s1", "2026-10-17T11:59:00.000Z"),
		toolEv(domain.EventPreToolUse, "s1", "2026-10-17T11:59:01.000Z", "Read", "t1"),
		toolEv(domain.EventPostToolUse, "s1", "2026-10-17T11:59:02.000Z", "Read", "t1"),
		ev(domain.EventSessionEnd, "s1", "2026-10-17T11:59:03.000Z"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "TotalEvents", 4, s.TotalEvents)
	assertEqual(t, "SessionCount", 1, s.SessionCount)
	assertEqual(t, "OrphanCount", 0, s.OrphanCount)
	assertEqual(t, "IsLive", false, s.Sessions[0].IsLive)
	assertEqual(t, "IsStale", false, s.Sessions[0].IsStale)
	assertEqual(t, "HasSessionEnd", true, s.Sessions[0].HasSessionEnd)
	assertEqual(t, "FirstTs", "2026-10-17T11:59:00.000Z", s.Sessions[0].FirstTs)
	assertEqual(t, "LastTs", "2026-10-17T11:59:03.000Z", s.Sessions[0].LastTs)
	assertEqual(t, "Read count", 2, usageCount(s.ToolUsage, "Read"))
}

func TestBuildSummary_Orphan(t *testing.T) {
	events := []domain.EventRecord{
		ev(domain.EventSessionStart, "s1", "2026-10-17T11:59:00.000Z"),
		toolEv(domain.EventPreToolUse, "s1", "2026-10-17T11:59:01.000Z", "Bash", "orphan1"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "OrphanCount", 1, s.OrphanCount)
	if !reflect.DeepEqual(s.OrphanIDs, []string{"orphan1"}) {
		t.Errorf("OrphanIDs = %v", s.OrphanIDs)
	}
	assertEqual(t, "session OrphanCount", 1, s.Sessions[0].OrphanCount)
}

func TestBuildSummary_OrphansAttributedToOwningSession(t *testing.T) {
	events := []domain.EventRecord{
		toolEv(domain.EventPreToolUse, "a", "2026-10-17T10:00:00.000Z", "Bash", "a1"),
		toolEv(domain.EventPreToolUse, "a", "2026-10-17T10:00:01.000Z", "Bash", "a2"),
		toolEv(domain.EventPostToolUseFailure, "a", "2026-10-17T10:00:02.000Z", "Bash", "a2"),
		toolEv(domain.EventPreToolUse, "b", "2026-10-17T10:00:03.000Z", "Read", "b1"),
		toolEv(domain.EventPreToolUse, "b", "2026-10-17T10:00:04.000Z", "Read", "b2"),
		toolEv(domain.EventPreToolUse, "c", "2026-10-17T10:00:05.000Z", "Read", ""),
		toolEv(domain.EventPostToolUse, "c", "2026-10-17T10:00:06.000Z", "Read", "never-opened"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "OrphanCount", 3, s.OrphanCount)
	if !reflect.DeepEqual(s.OrphanIDs, []string{"a1", "b1", "b2"}) {
		t.Errorf("OrphanIDs = %v", s.OrphanIDs)
	}
	perSession := map[string]int{}
	total := 0
	for _, sess := range s.Sessions {
		perSession[sess.SessionID] = sess.OrphanCount
		total += sess.OrphanCount
	}
	assertEqual(t, "a", 1, perSession["a"])
	assertEqual(t, "b", 2, perSession["b"])
	assertEqual(t, "c", 0, perSession["c"])
	assertEqual(t, "sum", s.OrphanCount, total)
}

func TestBuildSummary_Interrupt(t *testing.T) {
	events := []domain.EventRecord{
		ev(domain.EventSessionStart, "s1", "2026-10-17T11:59:00.000Z"),
		stopEv("s1", "2026-10-17T11:59:30.000Z", true),
		stopEv("s1", "2026-10-17T11:59:40.000Z", false),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "InterruptCount", 1, s.InterruptCount)
	assertEqual(t, "HasInterrupt", true, s.Sessions[0].HasInterrupt)
	assertEqual(t, "interrupt ts", "2026-10-17T11:59:30.000Z", s.Interrupts[0].Ts)
}

func TestBuildSummary_DoubleCounting(t *testing.T) {
	events := []domain.EventRecord{
		toolEv(domain.EventPreToolUse, "s1", "2026-10-17T10:00:00.000Z", "Edit", "t1"),
		toolEv(domain.EventPostToolUse, "s1", "2026-10-17T10:00:01.000Z", "Edit", "t1"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "Edit count", 2, usageCount(s.ToolUsage, "Edit"))
}

func TestBuildSummary_SkillMerge(t *testing.T) {
	events := []domain.EventRecord{
		skillEv("s1", "2026-10-17T10:00:00.000Z", "commit", "t1"),
		promptEv("s1", "2026-10-17T10:00:01.000Z", "/commit -m fix"),
		skillEv("s1", "2026-10-17T10:00:02.000Z", "", "t2"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "commit", 2, usageCount(s.SkillUsage, "commit"))
	assertEqual(t, "unknown", 1, usageCount(s.SkillUsage, UnknownSkill))
	assertEqual(t, "Skill tool", 2, usageCount(s.ToolUsage, SkillTool))
}

func TestBuildSummary_BuiltinExclusion(t *testing.T) {
	events := []domain.EventRecord{
		promptEv("s1", "2026-10-17T10:00:00.000Z", "/help"),
		promptEv("s1", "2026-10-17T10:00:01.000Z", "/clear"),
		promptEv("s1", "2026-10-17T10:00:02.000Z", "  /COMPACT keep the plan"),
		promptEv("s1", "2026-10-17T10:00:03.000Z", "/git-worktree list"),
		promptEv("s1", "2026-10-17T10:00:04.000Z", "please run /deploy"),
	}

	s := BuildSummary(events, testNow)

	if len(s.SkillUsage) != 1 {
		t.Fatalf("SkillUsage = %+v", s.SkillUsage)
	}
	assertEqual(t, "name", "git-worktree", s.SkillUsage[0].Name)
	assertEqual(t, "count", 1, s.SkillUsage[0].Count)
}

func TestBuildSummary_Liveness(t *testing.T) {
	tests := []struct {
		name      string
		events    []domain.EventRecord
		wantLive  bool
		wantStale bool
	}{
		{
			name:     "recent activity is live",
			events:   []domain.EventRecord{ev(domain.EventSessionStart, "s", "2026-10-17T11:56:00.000Z")},
			wantLive: true,
		},
		{
			name:     "exactly at threshold is live",
			events:   []domain.EventRecord{ev(domain.EventSessionStart, "s", "2026-10-17T11:55:00.000Z")},
			wantLive: true,
		},
		{
			name:      "quiet beyond threshold is stale",
			events:    []domain.EventRecord{ev(domain.EventSessionStart, "s", "2026-10-17T11:54:59.999Z")},
			wantStale: true,
		},
		{
			name: "ended is neither",
			events: []domain.EventRecord{
				ev(domain.EventSessionStart, "s", "2026-10-17T11:59:00.000Z"),
				ev(domain.EventSessionEnd, "s", "2026-10-17T11:59:30.000Z"),
			},
		},
		{
			name:   "no start is neither",
			events: []domain.EventRecord{ev(domain.EventUserPromptSubmit, "s", "2026-10-17T11:59:00.000Z")},
		},
		{
			name:      "unparseable timestamp is stale",
			events:    []domain.EventRecord{ev(domain.EventSessionStart, "s", "yesterday")},
			wantStale: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildSummary(tt.events, testNow)
			assertEqual(t, "IsLive", tt.wantLive, s.Sessions[0].IsLive)
			assertEqual(t, "IsStale", tt.wantStale, s.Sessions[0].IsStale)
		})
	}
}

func TestSummarize_CustomThreshold(t *testing.T) {
	events := []domain.EventRecord{ev(domain.EventSessionStart, "s", "2026-10-17T11:50:00.000Z")}

	s := Summarize(events, SummaryOptions{Now: testNow, LiveThreshold: 15 * time.Minute})

	assertEqual(t, "IsLive", true, s.Sessions[0].IsLive)
}

func TestBuildSummary_SessionsAndBounds(t *testing.T) {
	events := []domain.EventRecord{
		{Event: domain.EventSessionStart, SessionID: "old", Ts: "2026-10-17T09:00:05.000Z", Cwd: "/repo/a"},
		{Event: domain.EventUserPromptSubmit, SessionID: "old", Ts: "2026-10-17T09:00:00.000Z", Cwd: "/repo/b"},
		ev(domain.EventSessionStart, "new", "2026-10-17T11:00:00.000Z"),
		ev(domain.EventNotification, "", "2026-10-17T10:00:00.000Z"),
		ev("SomeFutureEvent", "new", "2026-10-17T11:00:01.000Z"),
	}

	s := BuildSummary(events, testNow)

	assertEqual(t, "SessionCount", 3, s.SessionCount)
	ids := []string{s.Sessions[0].SessionID, s.Sessions[1].SessionID, s.Sessions[2].SessionID}
	if !reflect.DeepEqual(ids, []string{"new", domain.UnknownSession, "old"}) {
		t.Errorf("session order = %v", ids)
	}

	old := s.Sessions[2]
	assertEqual(t, "old FirstTs", "2026-10-17T09:00:00.000Z", old.FirstTs)
	assertEqual(t, "old LastTs", "2026-10-17T09:00:05.000Z", old.LastTs)
	assertEqual(t, "old Cwd", "/repo/a", old.Cwd)

	sum := 0
	for _, sess := range s.Sessions {
		sum += sess.EventCount
		if sess.IsLive && sess.IsStale {
			t.Errorf("%s is both live and stale", sess.SessionID)
		}
	}
	assertEqual(t, "partition", len(events), sum)
	assertEqual(t, "TotalEvents", len(events), s.TotalEvents)
}

func TestBuildSummary_UsageOrder(t *testing.T) {
	events := []domain.EventRecord{
		toolEv(domain.EventPreToolUse, "s", "1", "Read", ""),
		toolEv(domain.EventPreToolUse, "s", "2", "Bash", ""),
		toolEv(domain.EventPreToolUse, "s", "3", "Grep", ""),
		toolEv(domain.EventPreToolUse, "s", "4", "Grep", ""),
	}

	s := BuildSummary(events, testNow)

	want := []domain.UsageEntry{{Name: "Grep", Count: 2}, {Name: "Read", Count: 1}, {Name: "Bash", Count: 1}}
	if !reflect.DeepEqual(s.ToolUsage, want) {
		t.Errorf("ToolUsage = %+v, want %+v", s.ToolUsage, want)
	}
}

func TestBuildSummary_Idempotent(t *testing.T) {
	events := []domain.EventRecord{
		ev(domain.EventSessionStart, "s1", "2026-10-17T11:59:00.000Z"),
		toolEv(domain.EventPreToolUse, "s1", "2026-10-17T11:59:01.000Z", "Bash", "x"),
		skillEv("s2", "2026-10-17T11:58:00.000Z", "review-pr", "y"),
		stopEv("s2", "2026-10-17T11:58:30.000Z", true),
	}

	first := BuildSummary(events, testNow)
	second := BuildSummary(events, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ:\n%+v\n%+v", first, second)
	}
}
