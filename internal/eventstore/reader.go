// Package eventstore reads and appends the newline-delimited JSON hook event
// log. Files are named hook-events.jsonl (current day) and
// hook-events.YYYY-MM-DD.jsonl (rotated).
package eventstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// CurrentFile is the file the ingester appends to.
const CurrentFile = "hook-events.jsonl"

// ListLogFiles returns the log file names in dir, most recent first by name.
// A missing directory yields an empty list.
func ListLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list log directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ValidateFilename(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ReadLogFile loads every decodable record from dir/name in file order.
// A missing file yields an empty sequence.
func ReadLogFile(dir, name string) ([]domain.EventRecord, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.EventRecord{}, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseEvents(f)
}

// ParseEvents decodes one record per non-blank line. Lines that fail to
// decode are dropped: a reader racing an in-progress append sees a partial
// last line, which is picked up whole on the next read.
func ParseEvents(r io.Reader) ([]domain.EventRecord, error) {
	events := make([]domain.EventRecord, 0)
	err := scanEvents(r, func(rec domain.EventRecord) bool {
		events = append(events, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// scanEvents calls fn for each decodable record until fn returns false.
func scanEvents(r io.Reader, fn func(domain.EventRecord) bool) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, math.MaxInt)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec domain.EventRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if !fn(rec) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	return nil
}
