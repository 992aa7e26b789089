package domain

// Session status values as exposed to query callers.
const (
	StatusLive  = "live"
	StatusStale = "stale"
	StatusEnded = "ended"
	StatusAll   = "all"
)

// UsageEntry is one row of a tool or skill usage histogram.
type UsageEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SessionState is the lifecycle view of a session derived from its events.
// It is recomputed on every summary and never persisted by the core.
type SessionState struct {
	SessionID       string `json:"sessionId"`
	EventCount      int    `json:"eventCount"`
	FirstTs         string `json:"firstTs"`
	LastTs          string `json:"lastTs"`
	Cwd             string `json:"cwd,omitempty"`
	HasSessionStart bool   `json:"hasSessionStart"`
	HasSessionEnd   bool   `json:"hasSessionEnd"`
	HasInterrupt    bool   `json:"hasInterrupt"`
	OrphanCount     int    `json:"orphanCount"`
	IsLive          bool   `json:"isLive"`
	IsStale         bool   `json:"isStale"`
}

// Status collapses the live/stale flags into the query vocabulary.
func (s SessionState) Status() string {
	switch {
	case s.IsLive:
		return StatusLive
	case s.IsStale:
		return StatusStale
	default:
		return StatusEnded
	}
}

// Summary aggregates an event sequence.
type Summary struct {
	TotalEvents    int            `json:"totalEvents"`
	SessionCount   int            `json:"sessionCount"`
	ToolUsage      []UsageEntry   `json:"toolUsage"`
	SkillUsage     []UsageEntry   `json:"skillUsage"`
	Sessions       []SessionState `json:"sessions"`
	OrphanCount    int            `json:"orphanCount"`
	OrphanIDs      []string       `json:"orphanIds"`
	InterruptCount int            `json:"interruptCount"`
	Interrupts     []EventRecord  `json:"interrupts"`
}

// SessionDetail is the per-session projection of the event log.
type SessionDetail struct {
	SessionID   string         `json:"sessionId"`
	MatchedIDs  []string       `json:"matchedIds"`
	EventCount  int            `json:"eventCount"`
	FirstTs     string         `json:"firstTs,omitempty"`
	LastTs      string         `json:"lastTs,omitempty"`
	Cwd         string         `json:"cwd,omitempty"`
	ToolUsage   []UsageEntry   `json:"toolUsage"`
	SkillUsage  []UsageEntry   `json:"skillUsage"`
	Events      []EventSummary `json:"events"`
	TotalEvents int            `json:"totalEvents"`
}

// EventSummary is the simplified, display-oriented form of an event.
type EventSummary struct {
	Event    string `json:"event"`
	Ts       string `json:"ts"`
	ToolName string `json:"toolName,omitempty"`
	Detail   string `json:"detail,omitempty"`
}
