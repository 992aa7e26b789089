package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/query"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions",
	Long: `List sessions, most recently active first.

Examples:
  hooklog sessions                    # All sessions
  hooklog sessions --status live      # Sessions active in the last 5 minutes
  hooklog sessions --status stale -n 5
  hooklog sessions --since 2026-10-17T09:00:00.000Z`,
	RunE: runSessions,
}

var sessionCmd = &cobra.Command{
	Use:   "session <id>",
	Short: "Show the events of one session",
	Long: `Show a session's events in time order. The id may be a prefix; every
session it matches is merged into the view.

Examples:
  hooklog session 3f2a9c
  hooklog session 3f2a9c --max-events 50`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

// Flags
var (
	sessionsStatus   string
	sessionsSince    string
	sessionsLimit    int
	sessionMaxEvents int
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(sessionCmd)

	sessionsCmd.Flags().StringVarP(&sessionsStatus, "status", "s", "all", "Filter by status: all, live, stale, ended")
	sessionsCmd.Flags().StringVar(&sessionsSince, "since", "", "Only sessions active at or after this timestamp")
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "Maximum sessions to show (0 = all)")

	sessionCmd.Flags().IntVarP(&sessionMaxEvents, "max-events", "n", query.DefaultMaxEvents, "Show at most this many of the latest events")
}

func runSessions(cmd *cobra.Command, args []string) error {
	list, err := app.Queries.Sessions(cmd.Context(), flagFile, query.SessionFilter{
		Status: sessionsStatus,
		Since:  sessionsSince,
		Limit:  sessionsLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, list)
	}
	if list.Count == 0 {
		fmt.Fprintln(out, "No sessions found")
		return nil
	}
	printSessions(out, list.Sessions, app.Clock.Now())
	fmt.Fprintf(out, "\nShowing %d of %d session(s)\n", list.Count, list.Total)
	return nil
}

func runSession(cmd *cobra.Command, args []string) error {
	d, err := app.Queries.SessionDetail(cmd.Context(), flagFile, args[0], sessionMaxEvents)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, d)
	}
	if len(d.MatchedIDs) == 0 {
		return fmt.Errorf("no session matches %q", args[0])
	}

	if d.SessionID != "" {
		fmt.Fprintf(out, "Session:  %s\n", d.SessionID)
	} else {
		fmt.Fprintf(out, "Sessions: %s\n", strings.Join(d.MatchedIDs, ", "))
	}
	if d.Cwd != "" {
		fmt.Fprintf(out, "Cwd:      %s\n", d.Cwd)
	}
	fmt.Fprintf(out, "Span:     %s .. %s\n", util.FormatDateTime(d.FirstTs), util.FormatDateTime(d.LastTs))
	fmt.Fprintf(out, "Events:   %d\n", d.EventCount)
	printUsage(out, "Tools", d.ToolUsage)
	printUsage(out, "Skills", d.SkillUsage)

	fmt.Fprintln(out)
	tw := newTable(out)
	fmt.Fprintln(tw, "TIME\tEVENT\tTOOL\tDETAIL")
	for _, e := range d.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Ts, e.Event, e.ToolName, util.TruncateRunes(e.Detail, 80))
	}
	tw.Flush()
	if len(d.Events) < d.TotalEvents {
		fmt.Fprintf(out, "\nShowing the latest %d of %d events\n", len(d.Events), d.TotalEvents)
	}
	return nil
}
