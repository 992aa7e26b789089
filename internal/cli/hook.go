package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Record a Claude Code hook event",
	Long: `Reads hook event JSON from stdin and appends it to the current log.

This is a unified entry point for all Claude Code hook events. "hooklog install"
configures it for every event type:

  {
    "hooks": {
      "PreToolUse":   [{"matcher": "*", "hooks": [{"type": "command", "command": "hooklog hook"}]}],
      "SessionStart": [{"hooks": [{"type": "command", "command": "hooklog hook"}]}]
    }
  }

The log is rotated to its dated name first when it holds a previous day.
Failures are logged to stderr and never block the host.`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	if app == nil {
		return nil
	}
	if err := recordHook(cmd.InOrStdin()); err != nil {
		app.Logger.Error().Err(err).Msg("hook event not recorded")
	}
	return nil
}

// recordHook stores one hook payload. An empty payload is ignored.
func recordHook(r io.Reader) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(input) == 0 {
		return nil
	}

	in, err := domain.ParseHookInput(input)
	if err != nil {
		return err
	}

	now := app.Clock.Now()
	if rotated, err := app.Store.Rotate(now); err != nil {
		app.Logger.Warn().Err(err).Msg("log rotation failed")
	} else if rotated != "" {
		app.Logger.Info().Str("file", rotated).Msg("rotated log")
	}

	rec := in.ToRecord(util.FormatTimestamp(now))
	if err := app.Store.Append(rec); err != nil {
		return err
	}
	app.Logger.Debug().Str("event", rec.Event).Str("session", rec.SessionID).Msg("recorded hook event")
	return nil
}
