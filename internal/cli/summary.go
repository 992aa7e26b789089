package cli

import (
	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a log file",
	Long: `Show event totals, session states, orphaned tool calls and usage.

Examples:
  hooklog summary                                  # Current log
  hooklog summary --top 5                          # Only the 5 busiest tools and skills
  hooklog summary -f hook-events.2026-10-16.jsonl  # A rotated log
  hooklog summary --json`,
	RunE: runSummary,
}

var summaryTop int

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVarP(&summaryTop, "top", "n", 0, "Cap the usage lists (0 = all)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		sum domain.Summary
		err error
	)
	if summaryTop > 0 {
		sum, err = app.Queries.Dashboard(ctx, flagFile, summaryTop)
	} else {
		sum, err = app.Queries.Summary(ctx, flagFile)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, sum)
	}
	printSummary(out, sum, app.Clock.Now())
	return nil
}
