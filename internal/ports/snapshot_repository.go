package ports

import (
	"context"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// SnapshotRepository persists derived summaries for later comparison. The
// analytics core never reads from it.
type SnapshotRepository interface {
	// Save stores the snapshot together with its sessions and usage rows.
	Save(ctx context.Context, snap *domain.Snapshot, sessions []domain.SessionState, usage []domain.SnapshotUsage) error
	// GetByID returns nil when the snapshot does not exist.
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	List(ctx context.Context, limit int) ([]*domain.Snapshot, error)
	ListSessions(ctx context.Context, snapshotID string) ([]domain.SessionState, error)
	ListUsage(ctx context.Context, snapshotID string) ([]domain.SnapshotUsage, error)
	Delete(ctx context.Context, id string) error
}
