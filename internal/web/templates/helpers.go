package templates

import (
	"fmt"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

func formatCount(n int) string {
	return util.FormatNumber(n)
}

func statusClass(status string) string {
	switch status {
	case domain.StatusLive:
		return "status-live"
	case domain.StatusStale:
		return "status-stale"
	default:
		return "status-ended"
	}
}

func sessionRows(sessions []domain.SessionState, now time.Time) []SessionRow {
	rows := make([]SessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, SessionRow{
			ID:        s.SessionID,
			ShortID:   util.ShortID(s.SessionID),
			Status:    s.Status(),
			Events:    s.EventCount,
			Orphans:   s.OrphanCount,
			Interrupt: s.HasInterrupt,
			Cwd:       s.Cwd,
			LastSeen:  util.FormatAgo(s.LastTs, now),
		})
	}
	return rows
}

func usageBars(entries []domain.UsageEntry) []UsageBar {
	bars := make([]UsageBar, 0, len(entries))
	if len(entries) == 0 {
		return bars
	}
	// entries are sorted by count descending
	busiest := entries[0].Count
	for _, e := range entries {
		pct := 0
		if busiest > 0 {
			pct = e.Count * 100 / busiest
		}
		bars = append(bars, UsageBar{Name: e.Name, Count: e.Count, Percent: pct})
	}
	return bars
}

func buildDashboardURL(file string) templ.SafeURL {
	if file == "" {
		return templ.SafeURL("/")
	}
	return templ.SafeURL("/?file=" + url.QueryEscape(file))
}

func buildSessionURL(id, file string) templ.SafeURL {
	u := "/api/sessions/" + url.PathEscape(id)
	if file != "" {
		u += "?file=" + url.QueryEscape(file)
	}
	return templ.SafeURL(u)
}

func refreshTrigger(seconds int) string {
	return fmt.Sprintf("every %ds", seconds)
}
