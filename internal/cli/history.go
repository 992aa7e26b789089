package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history [snapshot-id]",
	Short: "List saved snapshots or show one",
	Long: `Without arguments, list the snapshots saved by "hooklog export", newest
first. With a snapshot id, show its sessions and usage.

Examples:
  hooklog history
  hooklog history -n 5
  hooklog history 6f1c2d7e-...
  hooklog history 6f1c2d7e-... --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit  int
	historyDelete bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of snapshots to list")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "Delete the given snapshot")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, repos, err := app.OpenSnapshots(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if historyDelete {
			return fmt.Errorf("--delete needs a snapshot id")
		}
		snaps, err := repos.Snapshots.List(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}
		if flagJSON {
			return printJSON(out, snaps)
		}
		if len(snaps) == 0 {
			fmt.Fprintln(out, "No snapshots saved")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tDATE\tFILE\tEVENTS\tSESSIONS\tLIVE\tSTALE\tORPHANS\tNOTE")
		fmt.Fprintln(tw, "--\t----\t----\t------\t--------\t----\t-----\t-------\t----")
		for _, s := range snaps {
			note := ""
			if s.Note != nil {
				note = *s.Note
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				util.ShortID(s.ID), util.FormatDateTime(util.FormatTimestamp(s.CreatedAt)), s.SourceFile,
				s.TotalEvents, s.SessionCount, s.LiveCount, s.StaleCount, s.OrphanCount, note)
		}
		return tw.Flush()
	}

	snap, err := repos.Snapshots.GetByID(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		return fmt.Errorf("snapshot %q not found", args[0])
	}

	if historyDelete {
		if err := repos.Snapshots.Delete(ctx, snap.ID); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
		fmt.Fprintf(out, "Deleted snapshot %s\n", snap.ID)
		return nil
	}

	sessions, err := repos.Snapshots.ListSessions(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot sessions: %w", err)
	}
	usage, err := repos.Snapshots.ListUsage(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot usage: %w", err)
	}

	if flagJSON {
		return printJSON(out, map[string]any{"snapshot": snap, "sessions": sessions, "usage": usage})
	}

	fmt.Fprintf(out, "Snapshot %s of %s taken %s\n\n", snap.ID, snap.SourceFile, util.FormatDateTime(util.FormatTimestamp(snap.CreatedAt)))
	var tools, skills []domain.UsageEntry
	for _, u := range usage {
		entry := domain.UsageEntry{Name: u.Name, Count: u.Count}
		if u.Kind == domain.UsageKindSkill {
			skills = append(skills, entry)
		} else {
			tools = append(tools, entry)
		}
	}
	printTotals(out, domain.Summary{
		TotalEvents:    snap.TotalEvents,
		SessionCount:   snap.SessionCount,
		Sessions:       sessions,
		OrphanCount:    snap.OrphanCount,
		InterruptCount: snap.InterruptCount,
	})
	printUsage(out, "Tools", tools)
	printUsage(out, "Skills", skills)
	if len(sessions) > 0 {
		fmt.Fprintln(out)
		printSessions(out, sessions, snap.CreatedAt)
	}
	return nil
}
