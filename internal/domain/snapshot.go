package domain

import "time"

// Usage kinds stored alongside a snapshot.
const (
	UsageKindTool  = "tool"
	UsageKindSkill = "skill"
)

// Snapshot is a persisted copy of a summary's totals, taken by export.
type Snapshot struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	SourceFile     string    `json:"sourceFile"`
	TotalEvents    int       `json:"totalEvents"`
	SessionCount   int       `json:"sessionCount"`
	LiveCount      int       `json:"liveCount"`
	StaleCount     int       `json:"staleCount"`
	OrphanCount    int       `json:"orphanCount"`
	InterruptCount int       `json:"interruptCount"`
	Note           *string   `json:"note,omitempty"`
}

// SnapshotUsage is one tool or skill histogram row of a snapshot.
type SnapshotUsage struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewSnapshot copies the totals of s.
func NewSnapshot(id, sourceFile string, createdAt time.Time, s Summary) *Snapshot {
	snap := &Snapshot{
		ID:             id,
		CreatedAt:      createdAt,
		SourceFile:     sourceFile,
		TotalEvents:    s.TotalEvents,
		SessionCount:   s.SessionCount,
		OrphanCount:    s.OrphanCount,
		InterruptCount: s.InterruptCount,
	}
	for _, sess := range s.Sessions {
		switch sess.Status() {
		case StatusLive:
			snap.LiveCount++
		case StatusStale:
			snap.StaleCount++
		}
	}
	return snap
}

// SnapshotUsageRows flattens the histograms of s.
func SnapshotUsageRows(s Summary) []SnapshotUsage {
	rows := make([]SnapshotUsage, 0, len(s.ToolUsage)+len(s.SkillUsage))
	for _, u := range s.ToolUsage {
		rows = append(rows, SnapshotUsage{Kind: UsageKindTool, Name: u.Name, Count: u.Count})
	}
	for _, u := range s.SkillUsage {
		rows = append(rows, SnapshotUsage{Kind: UsageKindSkill, Name: u.Name, Count: u.Count})
	}
	return rows
}
