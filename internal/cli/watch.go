package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
	"github.com/devstefancho/claude-hook-logger/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live terminal view of the log",
	Long: `Show totals, open sessions and top tools and skills, redrawn whenever the log
changes and every 15 seconds so that idle sessions turn stale on screen.

Examples:
  hooklog watch
  hooklog watch -f hook-events.2026-10-16.jsonl`,
	RunE: runWatch,
}

var watchNoFollow bool

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchNoFollow, "no-follow", false, "Do not watch the directory for writes")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagFile != "" {
		if err := eventstore.ValidateFilename(flagFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var changes <-chan struct{}
	if !watchNoFollow {
		if err := os.MkdirAll(app.Config.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		w, err := tui.NewWatcher(app.Config.Dir, app.Logger)
		if err != nil {
			return err
		}
		defer w.Close()
		changes = w.Changes()
	}

	return tui.Run(ctx, app.Queries, flagFile, changes)
}
