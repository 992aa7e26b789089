package analytics

import "github.com/devstefancho/claude-hook-logger/internal/domain"

// FilterEventsByTime keeps events whose ts lies in [since, until]. An empty
// bound is open. Comparison is on the fixed-width timestamp strings.
func FilterEventsByTime(events []domain.EventRecord, since, until string) []domain.EventRecord {
	out := make([]domain.EventRecord, 0, len(events))
	for _, e := range events {
		if since != "" && e.Ts < since {
			continue
		}
		if until != "" && e.Ts > until {
			continue
		}
		out = append(out, e)
	}
	return out
}
