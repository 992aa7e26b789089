package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/query"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Summarize recent activity",
	Long: `Summarize only the events inside a recent window.

Examples:
  hooklog recent                                  # Last 30 minutes
  hooklog recent --minutes 120
  hooklog recent --since 2026-10-17T09:00:00.000Z`,
	RunE: runRecent,
}

var (
	recentMinutes int
	recentSince   string
)

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().IntVarP(&recentMinutes, "minutes", "m", 0, "Window size in minutes (default 30)")
	recentCmd.Flags().StringVar(&recentSince, "since", "", "Window start timestamp; wins over --minutes")
}

func runRecent(cmd *cobra.Command, args []string) error {
	recent, err := app.Queries.Recent(cmd.Context(), flagFile, query.RecentQuery{
		Since:   recentSince,
		Minutes: recentMinutes,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, recent)
	}
	fmt.Fprintf(out, "Since %s\n\n", recent.Since)
	printSummary(out, recent.Summary, app.Clock.Now())
	return nil
}
