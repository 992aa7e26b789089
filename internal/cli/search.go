package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/query"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search events",
	Long: `Find events by type, tool, session prefix and text. Text matches tool input
summaries and prompts, ignoring case.

Examples:
  hooklog search "go test"
  hooklog search --event PreToolUse --tool Bash
  hooklog search --session 3f2a9c --limit 200`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchEvent   string
	searchTool    string
	searchSession string
	searchLimit   int
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchEvent, "event", "e", "", "Event type, e.g. PreToolUse")
	searchCmd.Flags().StringVarP(&searchTool, "tool", "t", "", "Tool name")
	searchCmd.Flags().StringVarP(&searchSession, "session", "s", "", "Session id or prefix")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum matches (default 50)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	text := ""
	if len(args) == 1 {
		text = args[0]
	}

	res, err := app.Queries.Search(cmd.Context(), flagFile, query.SearchCriteria{
		Event:   searchEvent,
		Tool:    searchTool,
		Text:    text,
		Session: searchSession,
		Limit:   searchLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, res)
	}
	if res.Count == 0 {
		fmt.Fprintln(out, "No matching events")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "TIME\tEVENT\tSESSION\tTOOL\tDETAIL")
	for _, e := range res.Matches {
		detail := e.ToolInputSummary()
		if detail == "" {
			detail = e.Prompt()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Ts, e.Event, util.ShortID(e.Session()), e.ToolName(), util.TruncateRunes(detail, 80))
	}
	tw.Flush()

	if res.Truncated {
		fmt.Fprintf(out, "\nShowing %d of %d matches\n", res.Count, res.Total)
	}
	return nil
}
