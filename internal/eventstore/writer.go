package eventstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// Append writes rec as a single line to the current log file in dir,
// creating the directory and file as needed. The line is written with one
// write call on an O_APPEND descriptor so concurrent hook processes do not
// interleave.
func Append(dir string, rec domain.EventRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	line = append(line, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, CurrentFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append event: %w", err)
	}
	return f.Close()
}
