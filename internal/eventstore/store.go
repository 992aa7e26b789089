package eventstore

import (
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// Store binds the package functions to one log directory.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) ListLogFiles() ([]string, error) {
	return ListLogFiles(s.Dir)
}

// ReadLogFile reads name, or the current file when name is empty.
func (s *Store) ReadLogFile(name string) ([]domain.EventRecord, error) {
	if name == "" {
		name = CurrentFile
	}
	return ReadLogFile(s.Dir, name)
}

func (s *Store) Append(rec domain.EventRecord) error {
	return Append(s.Dir, rec)
}

func (s *Store) Rotate(now time.Time) (string, error) {
	return Rotate(s.Dir, now)
}
