package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTotals(w io.Writer, s domain.Summary) {
	live, stale, ended := 0, 0, 0
	for _, sess := range s.Sessions {
		switch sess.Status() {
		case domain.StatusLive:
			live++
		case domain.StatusStale:
			stale++
		default:
			ended++
		}
	}

	fmt.Fprintf(w, "Events:      %s\n", util.FormatNumber(s.TotalEvents))
	fmt.Fprintf(w, "Sessions:    %d (%d live, %d stale, %d ended)\n", s.SessionCount, live, stale, ended)
	fmt.Fprintf(w, "Orphaned:    %d\n", s.OrphanCount)
	fmt.Fprintf(w, "Interrupts:  %d\n", s.InterruptCount)
}

func printUsage(w io.Writer, title string, entries []domain.UsageEntry) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := newTable(w)
	for _, e := range entries {
		fmt.Fprintf(tw, "  %s\t%d\n", e.Name, e.Count)
	}
	tw.Flush()
}

func printSessions(w io.Writer, sessions []domain.SessionState, now time.Time) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tEVENTS\tORPHANS\tLAST SEEN\tCWD")
	fmt.Fprintln(tw, "--\t------\t------\t-------\t---------\t---")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			util.ShortID(s.SessionID), s.Status(), s.EventCount, s.OrphanCount,
			util.FormatAgo(s.LastTs, now), s.Cwd)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s domain.Summary, now time.Time) {
	printTotals(w, s)
	printUsage(w, "Tools", s.ToolUsage)
	printUsage(w, "Skills", s.SkillUsage)
	if len(s.OrphanIDs) > 0 {
		fmt.Fprintf(w, "\nOrphaned tool calls\n")
		for _, id := range s.OrphanIDs {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
	if len(s.Sessions) > 0 {
		fmt.Fprintln(w)
		printSessions(w, s.Sessions, now)
	}
}
