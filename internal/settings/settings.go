// Package settings installs and removes the hooklog hook command in the host
// application's settings file. Only the top-level "hooks" object and its
// per-event arrays are touched; every other key is carried over untouched.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// ErrMalformed is returned when the settings file has an unexpected shape.
var ErrMalformed = errors.New("malformed settings")

const (
	hooksKey    = "hooks"
	matcherAll  = "*"
	commandType = "command"
)

// toolEvents take a matcher; the other lifecycle events do not.
var toolEvents = map[string]bool{
	domain.EventPreToolUse:         true,
	domain.EventPostToolUse:        true,
	domain.EventPostToolUseFailure: true,
}

// Change describes one edit to the hooks object.
type Change struct {
	Added bool
	Event string
}

func (c Change) String() string {
	if c.Added {
		return "+ hooks." + c.Event
	}
	return "- hooks." + c.Event
}

// Settings is the decoded settings document.
type Settings map[string]any

// DefaultPath returns the host settings file, honoring CLAUDE_CONFIG_DIR.
func DefaultPath() (string, error) {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "settings.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Load reads a settings file. Comments and trailing commas are tolerated.
// A missing file yields an empty document.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSONC settings document.
func Parse(data []byte) (Settings, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return Settings{}, nil
	}
	var s Settings
	if err := json.Unmarshal(stripped, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if s == nil {
		// literal null
		return Settings{}, nil
	}
	return s, nil
}

// Save writes s as indented JSON. Comments from the original file are not
// preserved. When backupSuffix is non-empty an existing file is first copied
// to path+backupSuffix.
func Save(path string, s Settings, backupSuffix string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if backupSuffix != "" {
		if old, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+backupSuffix, old, 0o644); err != nil {
				return fmt.Errorf("failed to back up settings: %w", err)
			}
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Install registers command for each event unless a group of that event
// already runs it.
func Install(s Settings, command string, events []string) ([]Change, error) {
	hooks, err := hooksObject(s, true)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, event := range events {
		groups, err := eventGroups(hooks, event)
		if err != nil {
			return nil, err
		}
		if containsCommand(groups, command) {
			continue
		}

		group := map[string]any{
			"hooks": []any{map[string]any{"type": commandType, "command": command}},
		}
		if toolEvents[event] {
			group["matcher"] = matcherAll
		}
		hooks[event] = append(groups, group)
		changes = append(changes, Change{Added: true, Event: event})
	}
	return changes, nil
}

// Uninstall removes every hook entry running command. Groups and event
// arrays left empty are dropped, as is an empty hooks object.
func Uninstall(s Settings, command string) ([]Change, error) {
	hooks, err := hooksObject(s, false)
	if err != nil || hooks == nil {
		return nil, err
	}

	var changes []Change
	for _, event := range sortedKeys(hooks) {
		groups, err := eventGroups(hooks, event)
		if err != nil {
			return nil, err
		}

		kept := make([]any, 0, len(groups))
		removed := false
		for _, g := range groups {
			group, ok := g.(map[string]any)
			if !ok {
				kept = append(kept, g)
				continue
			}
			entries, _ := group["hooks"].([]any)
			remaining := make([]any, 0, len(entries))
			for _, h := range entries {
				if isCommand(h, command) {
					removed = true
					continue
				}
				remaining = append(remaining, h)
			}
			if len(remaining) == 0 && len(entries) > 0 {
				continue
			}
			group["hooks"] = remaining
			kept = append(kept, group)
		}
		if !removed {
			continue
		}

		changes = append(changes, Change{Event: event})
		if len(kept) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = kept
		}
	}

	if len(changes) > 0 && len(hooks) == 0 {
		delete(s, hooksKey)
	}
	return changes, nil
}

// Installed reports the events whose groups run command.
func Installed(s Settings, command string) []string {
	hooks, err := hooksObject(s, false)
	if err != nil || hooks == nil {
		return nil
	}
	var events []string
	for _, event := range sortedKeys(hooks) {
		groups, err := eventGroups(hooks, event)
		if err == nil && containsCommand(groups, command) {
			events = append(events, event)
		}
	}
	return events
}

func hooksObject(s Settings, create bool) (map[string]any, error) {
	raw, ok := s[hooksKey]
	if !ok || raw == nil {
		if !create {
			return nil, nil
		}
		hooks := map[string]any{}
		s[hooksKey] = hooks
		return hooks, nil
	}
	hooks, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an object", ErrMalformed, hooksKey)
	}
	return hooks, nil
}

func eventGroups(hooks map[string]any, event string) ([]any, error) {
	raw, ok := hooks[event]
	if !ok || raw == nil {
		return nil, nil
	}
	groups, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: hooks.%s is not an array", ErrMalformed, event)
	}
	return groups, nil
}

func containsCommand(groups []any, command string) bool {
	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		entries, _ := group["hooks"].([]any)
		for _, h := range entries {
			if isCommand(h, command) {
				return true
			}
		}
	}
	return false
}

func isCommand(h any, command string) bool {
	entry, ok := h.(map[string]any)
	if !ok {
		return false
	}
	return entry["type"] == commandType && entry["command"] == command
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
