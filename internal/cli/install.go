package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/settings"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the hook command in Claude Code settings",
	Long: `Add "hooklog hook" to the hooks of every event type in the Claude Code
settings file. Entries that already run the command are left alone, as is
everything else in the file. The previous file is kept as settings.json.bak.

Examples:
  hooklog install --dry-run
  hooklog install --events PreToolUse,PostToolUse,Stop
  hooklog install --settings .claude/settings.local.json`,
	RunE: runInstall,
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the hook command from Claude Code settings",
	RunE:  runUninstall,
}

// Flags
var (
	installSettings string
	installCommand  string
	installEvents   []string
	installDryRun   bool
)

const backupSuffix = ".bak"

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)

	for _, c := range []*cobra.Command{installCmd, uninstallCmd} {
		c.Flags().StringVar(&installSettings, "settings", "", "Settings file (default ~/.claude/settings.json)")
		c.Flags().StringVar(&installCommand, "command", "", "Hook command (default: this binary followed by \"hook\")")
		c.Flags().BoolVar(&installDryRun, "dry-run", false, "Print the changes without writing")
	}
	installCmd.Flags().StringSliceVar(&installEvents, "events", domain.KnownEvents, "Event types to hook")
}

func resolveInstallTarget() (path, command string, err error) {
	path = installSettings
	if path == "" {
		if path, err = settings.DefaultPath(); err != nil {
			return "", "", err
		}
	}

	command = installCommand
	if command == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", "", fmt.Errorf("failed to locate hooklog binary: %w", err)
		}
		command = exe + " hook"
	}
	return path, command, nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	path, command, err := resolveInstallTarget()
	if err != nil {
		return err
	}
	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	changes, err := settings.Install(s, command, installEvents)
	if err != nil {
		return err
	}
	return applyChanges(cmd.OutOrStdout(), path, s, changes)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	path, command, err := resolveInstallTarget()
	if err != nil {
		return err
	}
	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	changes, err := settings.Uninstall(s, command)
	if err != nil {
		return err
	}
	return applyChanges(cmd.OutOrStdout(), path, s, changes)
}

func applyChanges(out io.Writer, path string, s settings.Settings, changes []settings.Change) error {
	if flagJSON {
		lines := make([]string, 0, len(changes))
		for _, c := range changes {
			lines = append(lines, c.String())
		}
		if err := printJSON(out, map[string]any{"settings": path, "changes": lines, "dryRun": installDryRun}); err != nil {
			return err
		}
	} else {
		if len(changes) == 0 {
			fmt.Fprintf(out, "%s is already up to date\n", path)
			return nil
		}
		for _, c := range changes {
			fmt.Fprintln(out, c.String())
		}
	}

	if installDryRun || len(changes) == 0 {
		return nil
	}
	if err := settings.Save(path, s, backupSuffix); err != nil {
		return err
	}
	app.Logger.Info().Str("settings", path).Int("changes", len(changes)).Msg("settings updated")
	if !flagJSON {
		fmt.Fprintf(out, "Updated %s (%s)\n", path, pluralChanges(len(changes)))
	}
	return nil
}

func pluralChanges(n int) string {
	if n == 1 {
		return "1 change"
	}
	return fmt.Sprintf("%d changes", n)
}
