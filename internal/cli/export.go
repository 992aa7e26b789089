package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save a summary snapshot to the database",
	Long: `Summarize a log file and store the totals, session states and usage as a
snapshot in the hooklog database. Snapshots are listed by "hooklog history".

Examples:
  hooklog export
  hooklog export -f hook-events.2026-10-16.jsonl --note "before refactor"
  hooklog export sessions --format csv --output sessions.csv`,
	RunE: runExport,
}

var exportSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Export session states to JSON or CSV",
	RunE:  runExportSessions,
}

// Flags
var (
	exportNote   string
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportSessionsCmd)

	exportCmd.Flags().StringVar(&exportNote, "note", "", "Free-form note stored with the snapshot")
	exportSessionsCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv")
	exportSessionsCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sum, err := app.Queries.Summary(ctx, flagFile)
	if err != nil {
		return err
	}

	client, repos, err := app.OpenSnapshots(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	source := flagFile
	if source == "" {
		source = eventstore.CurrentFile
	}
	snap := domain.NewSnapshot(uuid.NewString(), source, app.Clock.Now().UTC(), sum)
	if exportNote != "" {
		snap.Note = &exportNote
	}

	if err := repos.Snapshots.Save(ctx, snap, sum.Sessions, domain.SnapshotUsageRows(sum)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	app.Logger.Info().Str("id", snap.ID).Str("file", source).Msg("snapshot saved")

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, snap)
	}
	fmt.Fprintf(out, "Saved snapshot %s (%d events, %d sessions)\n", snap.ID, snap.TotalEvents, snap.SessionCount)
	return nil
}

func runExportSessions(cmd *cobra.Command, args []string) error {
	sum, err := app.Queries.Summary(cmd.Context(), flagFile)
	if err != nil {
		return err
	}

	var output io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		output = f
	}

	switch exportFormat {
	case "json":
		if err := printJSON(output, sum.Sessions); err != nil {
			return err
		}
	case "csv":
		if err := writeSessionsCSV(output, sum.Sessions); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format: %s (use json or csv)", exportFormat)
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", len(sum.Sessions), exportOutput)
	}
	return nil
}

func writeSessionsCSV(w io.Writer, sessions []domain.SessionState) error {
	writer := csv.NewWriter(w)

	header := []string{
		"session_id", "status", "event_count", "first_ts", "last_ts", "cwd",
		"has_session_start", "has_session_end", "has_interrupt", "orphan_count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range sessions {
		row := []string{
			s.SessionID, s.Status(), strconv.Itoa(s.EventCount), s.FirstTs, s.LastTs, s.Cwd,
			strconv.FormatBool(s.HasSessionStart), strconv.FormatBool(s.HasSessionEnd),
			strconv.FormatBool(s.HasInterrupt), strconv.Itoa(s.OrphanCount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
