package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/infrastructure/config"
	"github.com/devstefancho/claude-hook-logger/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "hooklog",
	Short: "Record and analyze Claude Code hook events",
	Long: `hooklog records every Claude Code hook event into a daily JSONL log and
answers questions about it: which sessions are live or stale, which tool
calls never completed, which tools and skills get used.

Install the hook with "hooklog install", then inspect the log with
"hooklog summary", "hooklog sessions", "hooklog watch" or "hooklog serve".`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

// Global flags
var (
	flagDir      string
	flagFile     string
	flagJSON     bool
	flagLogLevel string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Log directory (default $HOOKLOG_DIR or the XDG data dir)")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Log file to read (default: the current log)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print the raw JSON result")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func setupApp(cmd *cobra.Command, args []string) error {
	app = nil
	a, err := NewAppContext(flagDir, flagLogLevel)
	if err == nil {
		app = a
		return nil
	}
	if cmd != hookCmd {
		return err
	}

	// The hook must record the event whatever else is misconfigured.
	warn := logger.New(cmd.ErrOrStderr(), logger.LevelWarn, false)
	warn.Warn().Err(err).Msg("recording with default settings")
	cfg, ferr := config.Fallback()
	if ferr != nil {
		warn.Error().Err(ferr).Msg("hook event not recorded")
		return nil
	}
	app = newAppContext(cfg, flagDir, flagLogLevel)
	return nil
}
