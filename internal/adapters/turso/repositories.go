package turso

import (
	"database/sql"

	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Snapshots ports.SnapshotRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Snapshots: NewSnapshotRepository(db),
	}
}
