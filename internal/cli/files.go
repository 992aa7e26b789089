package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List log files, most recent first",
	RunE:  runFiles,
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the current log if it holds a previous day",
	Long: `Rename hook-events.jsonl to hook-events.YYYY-MM-DD.jsonl when its first event
is from an earlier UTC day. The hook command does this on its own; rotate is
for directories that have been idle.`,
	RunE: runRotate,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(rotateCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	files, err := app.Queries.Files(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, map[string]any{"dir": app.Config.Dir, "files": files})
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No log files in %s\n", app.Config.Dir)
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}

func runRotate(cmd *cobra.Command, args []string) error {
	rotated, err := app.Store.Rotate(app.Clock.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, map[string]any{"rotated": rotated != "", "file": rotated})
	}
	if rotated == "" {
		fmt.Fprintln(out, "Nothing to rotate")
		return nil
	}
	fmt.Fprintf(out, "Rotated to %s\n", rotated)
	return nil
}
