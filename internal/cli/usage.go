package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/query"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show tool and skill usage",
	Long: `Show how often each tool and skill was used, optionally scoped to a session
prefix and a time range.

Examples:
  hooklog usage
  hooklog usage --type skills
  hooklog usage --session 3f2a9c --top 5
  hooklog usage --since 2026-10-17T00:00:00.000Z --until 2026-10-17T12:00:00.000Z`,
	RunE: runUsage,
}

var (
	usageType    string
	usageSession string
	usageSince   string
	usageUntil   string
	usageTop     int
)

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().StringVarP(&usageType, "type", "t", query.UsageBoth, "What to count: tools, skills, both")
	usageCmd.Flags().StringVarP(&usageSession, "session", "s", "", "Session id or prefix")
	usageCmd.Flags().StringVar(&usageSince, "since", "", "Range start timestamp (inclusive)")
	usageCmd.Flags().StringVar(&usageUntil, "until", "", "Range end timestamp (inclusive)")
	usageCmd.Flags().IntVarP(&usageTop, "top", "n", 0, "Cap each list (0 = all)")
}

func runUsage(cmd *cobra.Command, args []string) error {
	res, err := app.Queries.Usage(cmd.Context(), flagFile, query.UsageQuery{
		Type:    usageType,
		Session: usageSession,
		Since:   usageSince,
		Until:   usageUntil,
		Top:     usageTop,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "%d event(s) in scope\n", res.EventCount)
	if res.Type != query.UsageSkills {
		printUsage(out, "Tools", res.ToolUsage)
	}
	if res.Type != query.UsageTools {
		printUsage(out, "Skills", res.SkillUsage)
	}
	return nil
}
