package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devstefancho/claude-hook-logger/internal/clock"
	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// testEnv points the CLI at a fresh log directory and snapshot database
// and freezes the clock.
func testEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOOKLOG_DIR", dir)
	t.Setenv("HOOKLOG_DATABASE_URL", "file:"+filepath.Join(dir, "hooklog.db"))
	t.Setenv("HOOKLOG_LOG_LEVEL", "error")

	prev := appClock
	appClock = clock.Fixed(testNow)
	t.Cleanup(func() { appClock = prev })
	return dir
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default. Flag variables are package
// level and would otherwise leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var vals []string
			if def := strings.Trim(f.DefValue, "[]"); def != "" {
				vals = strings.Split(def, ",")
			}
			_ = sv.Replace(vals)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeLog(t *testing.T, dir, name string, events []domain.EventRecord) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			t.Fatal(err)
		}
	}
}

// seedLog writes one live, one stale and one ended session.
func seedLog(t *testing.T, dir string) {
	t.Helper()
	writeLog(t, dir, eventstore.CurrentFile, []domain.EventRecord{
		{Event: domain.EventSessionStart, SessionID: "stale-aaaa", Ts: "2026-10-17T09:00:00.000Z"},
		{Event: domain.EventPreToolUse, SessionID: "stale-aaaa", Ts: "2026-10-17T09:00:01.000Z",
			Data: &domain.EventData{ToolName: "Bash", ToolUseID: "b1", ToolInputSummary: "go test ./..."}},
		{Event: domain.EventSessionStart, SessionID: "done-bbbb", Ts: "2026-10-17T10:00:00.000Z", Cwd: "/repo"},
		{Event: domain.EventUserPromptSubmit, SessionID: "done-bbbb", Ts: "2026-10-17T10:00:01.000Z",
			Data: &domain.EventData{Prompt: "/deploy staging"}},
		{Event: domain.EventSessionEnd, SessionID: "done-bbbb", Ts: "2026-10-17T10:05:00.000Z"},
		{Event: domain.EventSessionStart, SessionID: "live-cccc", Ts: "2026-10-17T11:58:00.000Z"},
		{Event: domain.EventPreToolUse, SessionID: "live-cccc", Ts: "2026-10-17T11:58:30.000Z",
			Data: &domain.EventData{ToolName: "Read", ToolUseID: "r1", ToolInputSummary: "/repo/main.go"}},
		{Event: domain.EventPostToolUse, SessionID: "live-cccc", Ts: "2026-10-17T11:59:00.000Z",
			Data: &domain.EventData{ToolName: "Read", ToolUseID: "r1"}},
	})
}

func assertEqual[T comparable](t *testing.T, name string, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
