package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devstefancho/claude-hook-logger/internal/infrastructure/database"
	"github.com/devstefancho/claude-hook-logger/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run snapshot database migrations",
	Long: `Run snapshot database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).
"export" and "history" apply pending migrations on their own.

Examples:
  hooklog migrate      # Run all pending migrations
  hooklog migrate 0    # Roll back all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := database.NewWithOptions(ctx, app.Config.DatabaseURL, app.Config.DatabaseToken, database.Options{Ping: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer client.Close()

	currentVersion, allMigrations, err := migrate.Prepare(ctx, client.DB)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Current version: %d\n", currentVersion)

	if len(args) == 0 {
		return migrate.MigrateUp(ctx, client.DB, out, allMigrations, currentVersion)
	}

	targetVersion, err := strconv.Atoi(args[0])
	if err != nil || targetVersion < 0 {
		return fmt.Errorf("invalid version number: %s", args[0])
	}

	switch {
	case targetVersion > currentVersion:
		return migrate.MigrateUpTo(ctx, client.DB, out, allMigrations, currentVersion, targetVersion)
	case targetVersion < currentVersion:
		return migrate.MigrateDownTo(ctx, client.DB, out, allMigrations, currentVersion, targetVersion)
	default:
		fmt.Fprintln(out, "Already at target version")
		return nil
	}
}
