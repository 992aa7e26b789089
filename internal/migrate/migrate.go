package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/devstefancho/claude-hook-logger/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

func (m Migration) String() string {
	return fmt.Sprintf("%d_%s", m.Version, m.Name)
}

// EnsureMigrationsTable creates the schema_version table if it doesn't exist.
func EnsureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	return err
}

// GetCurrentVersion returns the applied schema version, 0 when none.
func GetCurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func setVersion(ctx context.Context, tx *sql.Tx, version int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, version)
	return err
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// LoadMigrations reads all embedded migration files and returns them sorted by version.
func LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var result []Migration
	for _, e := range entries {
		matches := upPattern.FindStringSubmatch(e.Name())
		if e.IsDir() || matches == nil {
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("bad migration version in %s: %w", e.Name(), err)
		}

		upSQL, err := fs.ReadFile(migrations.FS, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		// A missing down file leaves DownSQL empty; MigrateDownTo refuses it.
		downSQL, _ := fs.ReadFile(migrations.FS, strings.TrimSuffix(e.Name(), ".up.sql")+".down.sql")

		result = append(result, Migration{
			Version: version,
			Name:    matches[2],
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	for i := 1; i < len(result); i++ {
		if result[i].Version == result[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", result[i].Version)
		}
	}
	return result, nil
}

// RunMigration applies one migration (up or down) and records the resulting
// version in the same transaction, reporting progress to out.
func RunMigration(ctx context.Context, db *sql.DB, out io.Writer, m Migration, up bool) error {
	direction, body, target := "up", m.UpSQL, m.Version
	if !up {
		direction, body, target = "down", m.DownSQL, m.Version-1
	}
	_, _ = fmt.Fprintf(out, "  %s %s...\n", direction, m)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", m, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range SplitSQL(body) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s %s: %w\nSQL: %s", m, direction, err, stmt)
		}
	}
	if err := setVersion(ctx, tx, target); err != nil {
		return fmt.Errorf("failed to record version %d: %w", target, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m, err)
	}
	return nil
}

// SplitSQL splits a migration body into its non-empty statements.
// Statements must not contain semicolons inside literals.
func SplitSQL(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// MigrateUp runs all pending up migrations.
func MigrateUp(ctx context.Context, db *sql.DB, out io.Writer, allMigrations []Migration, currentVersion int) error {
	_, _ = fmt.Fprintln(out, "Running all pending migrations...")

	count := 0
	for _, m := range allMigrations {
		if m.Version <= currentVersion {
			continue
		}
		if err := RunMigration(ctx, db, out, m, true); err != nil {
			return err
		}
		currentVersion = m.Version
		count++
	}

	if count == 0 {
		_, _ = fmt.Fprintln(out, "No migrations to run")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Migrated to version %d (%d migrations applied)\n", currentVersion, count)
	return nil
}

// MigrateUpTo runs up migrations to a specific version.
func MigrateUpTo(ctx context.Context, db *sql.DB, out io.Writer, allMigrations []Migration, currentVersion, targetVersion int) error {
	if targetVersion > latest(allMigrations) {
		return fmt.Errorf("no migration with version %d", targetVersion)
	}
	_, _ = fmt.Fprintf(out, "Migrating up to version %d...\n", targetVersion)

	for _, m := range allMigrations {
		if m.Version <= currentVersion {
			continue
		}
		if m.Version > targetVersion {
			break
		}
		if err := RunMigration(ctx, db, out, m, true); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "Migrated to version %d\n", targetVersion)
	return nil
}

// MigrateDownTo runs down migrations to a specific version.
func MigrateDownTo(ctx context.Context, db *sql.DB, out io.Writer, allMigrations []Migration, currentVersion, targetVersion int) error {
	_, _ = fmt.Fprintf(out, "Migrating down to version %d...\n", targetVersion)

	for i := len(allMigrations) - 1; i >= 0; i-- {
		m := allMigrations[i]
		if m.Version > currentVersion {
			continue
		}
		if m.Version <= targetVersion {
			break
		}
		if m.DownSQL == "" {
			return fmt.Errorf("no down migration for version %d", m.Version)
		}
		if err := RunMigration(ctx, db, out, m, false); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "Migrated to version %d\n", targetVersion)
	return nil
}

func latest(all []Migration) int {
	if len(all) == 0 {
		return 0
	}
	return all[len(all)-1].Version
}

// Prepare ensures the version table exists and returns the current version
// along with every embedded migration.
func Prepare(ctx context.Context, db *sql.DB) (int, []Migration, error) {
	if err := EnsureMigrationsTable(ctx, db); err != nil {
		return 0, nil, fmt.Errorf("failed to create version table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(ctx, db)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get current version: %w", err)
	}

	allMigrations, err := LoadMigrations()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if currentVersion > latest(allMigrations) {
		return 0, nil, fmt.Errorf("database version %d is newer than this binary (%d)", currentVersion, latest(allMigrations))
	}
	return currentVersion, allMigrations, nil
}

// RunAll silently runs all pending migrations on the provided database.
func RunAll(ctx context.Context, db *sql.DB) error {
	currentVersion, allMigrations, err := Prepare(ctx, db)
	if err != nil {
		return err
	}
	return MigrateUp(ctx, db, io.Discard, allMigrations, currentVersion)
}
