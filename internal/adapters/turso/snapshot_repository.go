package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/infrastructure/database"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

const readRetries = 2

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot, sessions []domain.SessionState, usage []domain.SnapshotUsage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, created_at, source_file, total_events, session_count,
			live_count, stale_count, orphan_count, interrupt_count, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339), snap.SourceFile,
		snap.TotalEvents, snap.SessionCount, snap.LiveCount, snap.StaleCount,
		snap.OrphanCount, snap.InterruptCount, util.NullStringPtr(snap.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for _, s := range sessions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_sessions (snapshot_id, session_id, event_count, first_ts, last_ts,
				cwd, status, has_session_start, has_session_end, has_interrupt, orphan_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, s.SessionID, s.EventCount, s.FirstTs, s.LastTs,
			util.NullString(s.Cwd), s.Status(),
			util.BoolToInt64(s.HasSessionStart), util.BoolToInt64(s.HasSessionEnd),
			util.BoolToInt64(s.HasInterrupt), s.OrphanCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot session %s: %w", s.SessionID, err)
		}
	}

	for i, u := range usage {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_usage (snapshot_id, kind, name, count, position)
			VALUES (?, ?, ?, ?, ?)`,
			snap.ID, u.Kind, u.Name, u.Count, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot usage %s/%s: %w", u.Kind, u.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

const snapshotColumns = `id, created_at, source_file, total_events, session_count,
	live_count, stale_count, orphan_count, interrupt_count, note`

func (r *SnapshotRepository) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, err := database.WithRetry(ctx, readRetries, func() (*domain.Snapshot, error) {
		row := r.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id)
		return scanSnapshot(row)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snap, nil
}

func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	return database.WithRetry(ctx, readRetries, func() ([]*domain.Snapshot, error) {
		rows, err := r.db.QueryContext(ctx,
			`SELECT `+snapshotColumns+` FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		defer func() { _ = rows.Close() }()

		snaps := make([]*domain.Snapshot, 0)
		for rows.Next() {
			snap, err := scanSnapshot(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan snapshot: %w", err)
			}
			snaps = append(snaps, snap)
		}
		return snaps, rows.Err()
	})
}

func (r *SnapshotRepository) ListSessions(ctx context.Context, snapshotID string) ([]domain.SessionState, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, event_count, first_ts, last_ts, cwd, status,
			has_session_start, has_session_end, has_interrupt, orphan_count
		FROM snapshot_sessions
		WHERE snapshot_id = ?
		ORDER BY last_ts DESC, session_id`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]domain.SessionState, 0)
	for rows.Next() {
		var (
			s                  domain.SessionState
			cwd                sql.NullString
			status             string
			start, end, interr int64
		)
		if err := rows.Scan(&s.SessionID, &s.EventCount, &s.FirstTs, &s.LastTs, &cwd, &status,
			&start, &end, &interr, &s.OrphanCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot session: %w", err)
		}
		s.Cwd = cwd.String
		s.HasSessionStart = start == 1
		s.HasSessionEnd = end == 1
		s.HasInterrupt = interr == 1
		s.IsLive = status == domain.StatusLive
		s.IsStale = status == domain.StatusStale
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SnapshotRepository) ListUsage(ctx context.Context, snapshotID string) ([]domain.SnapshotUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, name, count
		FROM snapshot_usage
		WHERE snapshot_id = ?
		ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot usage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	usage := make([]domain.SnapshotUsage, 0)
	for rows.Next() {
		var u domain.SnapshotUsage
		if err := rows.Scan(&u.Kind, &u.Name, &u.Count); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// Delete removes a snapshot and its rows. Child rows are deleted explicitly
// since foreign key enforcement is off by default in SQLite.
func (r *SnapshotRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM snapshot_usage WHERE snapshot_id = ?`,
		`DELETE FROM snapshot_sessions WHERE snapshot_id = ?`,
		`DELETE FROM snapshots WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var (
		snap      domain.Snapshot
		createdAt string
		note      sql.NullString
	)
	if err := row.Scan(&snap.ID, &createdAt, &snap.SourceFile, &snap.TotalEvents, &snap.SessionCount,
		&snap.LiveCount, &snap.StaleCount, &snap.OrphanCount, &snap.InterruptCount, &note); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	snap.CreatedAt = t
	snap.Note = util.NullStringToPtr(note)
	return &snap, nil
}
