package eventstore

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFilename is returned when a caller-supplied log file name could
// select a path outside the log directory or is not a hook event log.
var ErrInvalidFilename = errors.New("invalid log file name")

var filenamePattern = regexp.MustCompile(`^hook-events[\w.-]*\.jsonl$`)

// ValidateFilename rejects path traversal and anything that is not a hook
// event log name. The name may come from an untrusted query parameter.
func ValidateFilename(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if !filenamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}

// RotatedName returns the file name used for a log rotated on day
// (formatted 2006-01-02). n > 0 disambiguates repeated rotations.
func RotatedName(day string, n int) string {
	if n == 0 {
		return fmt.Sprintf("hook-events.%s.jsonl", day)
	}
	return fmt.Sprintf("hook-events.%s-%d.jsonl", day, n)
}
