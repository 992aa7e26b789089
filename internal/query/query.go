// Package query composes the analytics primitives into the read-only
// operations exposed over HTTP, the CLI and the tool registry.
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/analytics"
	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

var (
	// ErrInvalidArgument is returned for a malformed query parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownTool is returned when a tool name is not registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// Usage query types.
const (
	UsageTools  = "tools"
	UsageSkills = "skills"
	UsageBoth   = "both"
)

// Dashboard returns the summary with both histograms capped at top entries.
func Dashboard(s domain.Summary, top int) domain.Summary {
	s.ToolUsage = analytics.TopN(s.ToolUsage, top)
	s.SkillUsage = analytics.TopN(s.SkillUsage, top)
	return s
}

// SessionFilter selects sessions from a summary. Zero values match all.
type SessionFilter struct {
	Status string
	Since  string
	Limit  int
}

// SessionList is a filtered page of sessions. Total counts matches before
// the limit is applied.
type SessionList struct {
	Sessions []domain.SessionState `json:"sessions"`
	Count    int                   `json:"count"`
	Total    int                   `json:"total"`
}

// ListSessions filters the sessions of s, keeping the summary's
// most-recent-first order.
func ListSessions(s domain.Summary, f SessionFilter) (SessionList, error) {
	status := strings.ToLower(f.Status)
	switch status {
	case "", domain.StatusAll, domain.StatusLive, domain.StatusStale, domain.StatusEnded:
	default:
		return SessionList{}, fmt.Errorf("%w: status %q", ErrInvalidArgument, f.Status)
	}

	out := make([]domain.SessionState, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		if status != "" && status != domain.StatusAll && sess.Status() != status {
			continue
		}
		if f.Since != "" && sess.LastTs < f.Since {
			continue
		}
		out = append(out, sess)
	}

	total := len(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return SessionList{Sessions: out, Count: len(out), Total: total}, nil
}

// SessionDetail projects one session and keeps its most recent maxEvents
// events.
func SessionDetail(events []domain.EventRecord, idOrPrefix string, maxEvents int) (domain.SessionDetail, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		return domain.SessionDetail{}, fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	}
	d := analytics.BuildSessionDetail(events, idOrPrefix)
	return analytics.TruncateEvents(d, maxEvents), nil
}

// RecentQuery selects the window of a recent-activity query. Since wins
// over Minutes when both are set.
type RecentQuery struct {
	Since   string
	Minutes int
}

// RecentActivity is the summary of the events at or after Since.
type RecentActivity struct {
	Since   string         `json:"since"`
	Summary domain.Summary `json:"summary"`
}

// Recent summarizes the events inside the window described by q.
func Recent(events []domain.EventRecord, q RecentQuery, opts analytics.SummaryOptions) (RecentActivity, error) {
	since := q.Since
	if since == "" {
		if q.Minutes <= 0 {
			return RecentActivity{}, fmt.Errorf("%w: minutes must be positive", ErrInvalidArgument)
		}
		since = util.FormatTimestamp(opts.Now.Add(-time.Duration(q.Minutes) * time.Minute))
	}

	filtered := analytics.FilterEventsByTime(events, since, "")
	return RecentActivity{
		Since:   since,
		Summary: analytics.Summarize(filtered, opts),
	}, nil
}

// UsageQuery scopes a usage histogram.
type UsageQuery struct {
	Type    string
	Session string
	Since   string
	Until   string
	Top     int
}

// UsageResult holds the requested histograms. A histogram that was not
// requested is empty.
type UsageResult struct {
	Type       string              `json:"type"`
	Session    string              `json:"session,omitempty"`
	EventCount int                 `json:"eventCount"`
	ToolUsage  []domain.UsageEntry `json:"toolUsage"`
	SkillUsage []domain.UsageEntry `json:"skillUsage"`
}

// Usage aggregates tool and skill usage over an optional session and time
// window.
func Usage(events []domain.EventRecord, q UsageQuery) (UsageResult, error) {
	kind := strings.ToLower(q.Type)
	if kind == "" {
		kind = UsageBoth
	}
	if kind != UsageTools && kind != UsageSkills && kind != UsageBoth {
		return UsageResult{}, fmt.Errorf("%w: usage type %q", ErrInvalidArgument, q.Type)
	}

	scoped := events
	if q.Session != "" {
		scoped = analytics.GetSessionEvents(scoped, q.Session)
	}
	scoped = analytics.FilterEventsByTime(scoped, q.Since, q.Until)

	res := UsageResult{
		Type:       kind,
		Session:    q.Session,
		EventCount: len(scoped),
		ToolUsage:  []domain.UsageEntry{},
		SkillUsage: []domain.UsageEntry{},
	}
	if kind != UsageSkills {
		res.ToolUsage = analytics.TopN(analytics.ToolUsage(scoped), q.Top)
	}
	if kind != UsageTools {
		res.SkillUsage = analytics.TopN(analytics.SkillUsage(scoped), q.Top)
	}
	return res, nil
}

// SearchCriteria filters events. Set fields are ANDed.
type SearchCriteria struct {
	Event   string
	Tool    string
	Text    string
	Session string
	Limit   int
}

func (c SearchCriteria) matches(e domain.EventRecord, text string) bool {
	if c.Event != "" && e.Event != c.Event {
		return false
	}
	if c.Tool != "" && e.ToolName() != c.Tool {
		return false
	}
	if c.Session != "" && !analytics.MatchesSession(e, c.Session) {
		return false
	}
	if text != "" &&
		!strings.Contains(strings.ToLower(e.ToolInputSummary()), text) &&
		!strings.Contains(strings.ToLower(e.Prompt()), text) {
		return false
	}
	return true
}

// SearchResult holds the first Limit matches in file order.
type SearchResult struct {
	Matches   []domain.EventRecord `json:"matches"`
	Count     int                  `json:"count"`
	Total     int                  `json:"total"`
	Truncated bool                 `json:"truncated"`
}

// Search returns events matching c. Limit <= 0 means no cap.
func Search(events []domain.EventRecord, c SearchCriteria) SearchResult {
	text := strings.ToLower(strings.TrimSpace(c.Text))

	res := SearchResult{Matches: make([]domain.EventRecord, 0)}
	for _, e := range events {
		if !c.matches(e, text) {
			continue
		}
		res.Total++
		if c.Limit <= 0 || len(res.Matches) < c.Limit {
			res.Matches = append(res.Matches, e)
		}
	}
	res.Count = len(res.Matches)
	res.Truncated = res.Total > res.Count
	return res
}
