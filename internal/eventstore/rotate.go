package eventstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

const dayLayout = "2006-01-02"

// Rotate renames the current log file to its dated name when its first
// record belongs to a UTC day before now. It returns the new file name, or
// "" when nothing was rotated.
func Rotate(dir string, now time.Time) (string, error) {
	current := filepath.Join(dir, CurrentFile)
	info, err := os.Stat(current)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat log file: %w", err)
	}

	started, err := fileDay(dir, info.ModTime())
	if err != nil {
		return "", err
	}
	day := started.UTC().Format(dayLayout)
	if day >= now.UTC().Format(dayLayout) {
		return "", nil
	}

	for n := 0; ; n++ {
		name := RotatedName(day, n)
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if err := os.Rename(current, target); err != nil {
			return "", fmt.Errorf("failed to rotate log file: %w", err)
		}
		return name, nil
	}
}

// fileDay returns the time of the first timestamped record in the current
// file, falling back to the file's modification time.
func fileDay(dir string, modTime time.Time) (time.Time, error) {
	f, err := os.Open(filepath.Join(dir, CurrentFile))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, ok, err := firstTimestamp(f)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return modTime, nil
	}
	return t, nil
}

// firstTimestamp reads only as far as the first record with a parseable ts.
func firstTimestamp(r io.Reader) (time.Time, bool, error) {
	var (
		first time.Time
		found bool
	)
	err := scanEvents(r, func(rec domain.EventRecord) bool {
		t, err := util.ParseTimestamp(rec.Ts)
		if err != nil {
			return true
		}
		first, found = t, true
		return false
	})
	return first, found, err
}
