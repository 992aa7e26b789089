package analytics

import (
	"sort"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

// DefaultLiveThreshold is how long an open session may stay quiet before it
// is classified stale.
const DefaultLiveThreshold = 5 * time.Minute

// SummaryOptions controls the clock-dependent part of a summary.
type SummaryOptions struct {
	Now           time.Time
	LiveThreshold time.Duration
}

// BuildSummary aggregates events with the default liveness threshold.
func BuildSummary(events []domain.EventRecord, now time.Time) domain.Summary {
	return Summarize(events, SummaryOptions{Now: now})
}

// Summarize aggregates events in a single pass. Input order only matters for
// tie-breaks and list order; session bounds are min/max over ts strings.
func Summarize(events []domain.EventRecord, opts SummaryOptions) domain.Summary {
	threshold := opts.LiveThreshold
	if threshold <= 0 {
		threshold = DefaultLiveThreshold
	}

	var (
		sessions   = make(map[string]*domain.SessionState)
		order      []string
		u          = newUsage()
		opened     []string
		openedSet  = make(map[string]bool)
		closed     = make(map[string]bool)
		interrupts = make([]domain.EventRecord, 0)
	)

	for _, e := range events {
		id := e.Session()
		s, ok := sessions[id]
		if !ok {
			s = &domain.SessionState{SessionID: id, FirstTs: e.Ts, LastTs: e.Ts}
			sessions[id] = s
			order = append(order, id)
		}
		s.EventCount++
		if e.Ts < s.FirstTs {
			s.FirstTs = e.Ts
		}
		if e.Ts > s.LastTs {
			s.LastTs = e.Ts
		}
		if s.Cwd == "" && e.Cwd != "" {
			s.Cwd = e.Cwd
		}

		u.observe(e)

		switch e.Event {
		case domain.EventSessionStart:
			s.HasSessionStart = true
		case domain.EventSessionEnd:
			s.HasSessionEnd = true
		case domain.EventPreToolUse:
			if tid := e.ToolUseID(); tid != "" && !openedSet[tid] {
				openedSet[tid] = true
				opened = append(opened, tid)
			}
		case domain.EventPostToolUse, domain.EventPostToolUseFailure:
			if tid := e.ToolUseID(); tid != "" {
				closed[tid] = true
			}
		case domain.EventStop:
			if e.StopHookActive() {
				s.HasInterrupt = true
				interrupts = append(interrupts, e)
			}
		}
	}

	orphanIDs := make([]string, 0)
	orphaned := make(map[string]bool)
	for _, tid := range opened {
		if !closed[tid] {
			orphaned[tid] = true
			orphanIDs = append(orphanIDs, tid)
		}
	}
	if len(orphaned) > 0 {
		for _, e := range events {
			if e.Event == domain.EventPreToolUse && orphaned[e.ToolUseID()] {
				sessions[e.Session()].OrphanCount++
			}
		}
	}

	list := make([]domain.SessionState, 0, len(order))
	for _, id := range order {
		s := sessions[id]
		classify(s, opts.Now, threshold)
		list = append(list, *s)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastTs > list[j].LastTs
	})

	return domain.Summary{
		TotalEvents:    len(events),
		SessionCount:   len(list),
		ToolUsage:      u.tools.entries(),
		SkillUsage:     u.skills.entries(),
		Sessions:       list,
		OrphanCount:    len(orphanIDs),
		OrphanIDs:      orphanIDs,
		InterruptCount: len(interrupts),
		Interrupts:     interrupts,
	}
}

// classify sets IsLive/IsStale for a session that started and has not ended.
// A last timestamp that does not parse counts as stale.
func classify(s *domain.SessionState, now time.Time, threshold time.Duration) {
	if !s.HasSessionStart || s.HasSessionEnd {
		return
	}
	last, err := util.ParseTimestamp(s.LastTs)
	if err != nil {
		s.IsStale = true
		return
	}
	if now.Sub(last) <= threshold {
		s.IsLive = true
	} else {
		s.IsStale = true
	}
}
