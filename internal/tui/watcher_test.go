package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
)

func TestWatcher_SignalsLogWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := eventstore.Append(dir, domain.EventRecord{Event: domain.EventStop, SessionID: "s", Ts: "2026-10-17T12:00:00.000Z"}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), zerolog.Nop()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"log write", fsnotify.Event{Name: "/d/hook-events.jsonl", Op: fsnotify.Write}, true},
		{"rotation", fsnotify.Event{Name: "/d/hook-events.2026-10-16.jsonl", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/d/hook-events.jsonl", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/d/hooklog.db", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.event); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
		t.Error("unexpected change signal for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseEndsChanges(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Error("expected closed channel, got a signal")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel still open after Close")
	}
}
