package analytics

import (
	"sort"
	"strings"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// MatchesSession reports whether e belongs to the session named by
// idOrPrefix: an exact id or any prefix of one. An empty prefix matches
// nothing.
func MatchesSession(e domain.EventRecord, idOrPrefix string) bool {
	return idOrPrefix != "" && strings.HasPrefix(e.Session(), idOrPrefix)
}

// GetSessionEvents returns the events of the session(s) matching idOrPrefix
// in input order.
func GetSessionEvents(events []domain.EventRecord, idOrPrefix string) []domain.EventRecord {
	out := make([]domain.EventRecord, 0)
	for _, e := range events {
		if MatchesSession(e, idOrPrefix) {
			out = append(out, e)
		}
	}
	return out
}

// BuildSessionDetail projects the events of one session. When nothing
// matches it returns a zero detail with empty collections.
func BuildSessionDetail(events []domain.EventRecord, idOrPrefix string) domain.SessionDetail {
	matched := GetSessionEvents(events, idOrPrefix)

	detail := domain.SessionDetail{
		SessionID:  idOrPrefix,
		MatchedIDs: make([]string, 0),
		EventCount: len(matched),
		Events:     make([]domain.EventSummary, 0, len(matched)),
	}

	seen := make(map[string]bool)
	u := newUsage()
	for i, e := range matched {
		if id := e.Session(); !seen[id] {
			seen[id] = true
			detail.MatchedIDs = append(detail.MatchedIDs, id)
		}
		if i == 0 || e.Ts < detail.FirstTs {
			detail.FirstTs = e.Ts
		}
		if i == 0 || e.Ts > detail.LastTs {
			detail.LastTs = e.Ts
		}
		if detail.Cwd == "" && e.Cwd != "" {
			detail.Cwd = e.Cwd
		}
		u.observe(e)
		detail.Events = append(detail.Events, summarizeEvent(e))
	}
	if len(detail.MatchedIDs) == 1 {
		detail.SessionID = detail.MatchedIDs[0]
	}

	sort.SliceStable(detail.Events, func(i, j int) bool {
		return detail.Events[i].Ts < detail.Events[j].Ts
	})

	detail.ToolUsage = u.tools.entries()
	detail.SkillUsage = u.skills.entries()
	detail.TotalEvents = len(detail.Events)
	return detail
}

// TruncateEvents keeps the most recent max events of d. TotalEvents still
// reports the full count so callers can render "N of M".
func TruncateEvents(d domain.SessionDetail, max int) domain.SessionDetail {
	if max > 0 && len(d.Events) > max {
		d.Events = d.Events[len(d.Events)-max:]
	}
	return d
}

func summarizeEvent(e domain.EventRecord) domain.EventSummary {
	detail := e.ToolInputSummary()
	if detail == "" {
		detail = e.Prompt()
	}
	return domain.EventSummary{
		Event:    e.Event,
		Ts:       e.Ts,
		ToolName: e.ToolName(),
		Detail:   detail,
	}
}
