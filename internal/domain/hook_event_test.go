package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEventRecord_Unmarshal(t *testing.T) {
	input := []byte(`{
		"ts": "2026-10-17T09:00:00.000Z",
		"event": "PreToolUse",
		"session_id": "abc123",
		"cwd": "/home/user/project",
		"permission_mode": "default",
		"data": {
			"tool_name": "Bash",
			"tool_use_id": "toolu_1",
			"tool_input_summary": "go test ./...",
			"custom_field": {"nested": 1}
		}
	}`)

	var rec EventRecord
	if err := json.Unmarshal(input, &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "Event", EventPreToolUse, rec.Event)
	assertEqual(t, "SessionID", "abc123", rec.SessionID)
	assertEqual(t, "Ts", "2026-10-17T09:00:00.000Z", rec.Ts)
	assertEqual(t, "Cwd", "/home/user/project", rec.Cwd)
	assertEqual(t, "PermissionMode", "default", rec.PermissionMode)
	assertEqual(t, "ToolName", "Bash", rec.ToolName())
	assertEqual(t, "ToolUseID", "toolu_1", rec.ToolUseID())
	assertEqual(t, "ToolInputSummary", "go test ./...", rec.ToolInputSummary())

	if rec.Data == nil || rec.Data.Extra["custom_field"] == nil {
		t.Fatal("expected unknown data field to be preserved")
	}
}

func TestEventRecord_WrongFieldTypesAreAbsent(t *testing.T) {
	input := []byte(`{"event":"PreToolUse","session_id":42,"ts":"t1","data":{"tool_name":7,"tool_use_id":"x"}}`)

	var rec EventRecord
	if err := json.Unmarshal(input, &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, "SessionID", "", rec.SessionID)
	assertEqual(t, "Session()", UnknownSession, rec.Session())
	assertEqual(t, "ToolName", "", rec.ToolName())
	assertEqual(t, "ToolUseID", "x", rec.ToolUseID())
}

func TestEventRecord_DataNotObject(t *testing.T) {
	var rec EventRecord
	if err := json.Unmarshal([]byte(`{"event":"Stop","data":"oops"}`), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Data != nil {
		t.Errorf("expected nil data, got %+v", rec.Data)
	}
	if rec.StopHookActive() {
		t.Error("StopHookActive should be false without data")
	}
}

func TestEventRecord_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{`null`, `42`, `"str"`, `[1,2]`, `{bad`} {
		var rec EventRecord
		if err := json.Unmarshal([]byte(in), &rec); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestEventRecord_RoundTripKeepsExtra(t *testing.T) {
	input := `{"event":"Notification","ts":"t1","data":{"message":"hi","level":"warn"}}`

	var rec EventRecord
	if err := json.Unmarshal([]byte(input), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"level":"warn"`) {
		t.Errorf("marshalled record lost extra field: %s", out)
	}
	if !strings.Contains(string(out), `"message":"hi"`) {
		t.Errorf("marshalled record lost message: %s", out)
	}
	if strings.Contains(string(out), "session_id") {
		t.Errorf("empty session_id should be omitted: %s", out)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{``, false},
		{`true`, true},
		{`false`, false},
		{`null`, false},
		{`1`, true},
		{`0`, false},
		{`0.0`, false},
		{`-2.5`, true},
		{`"yes"`, true},
		{`"false"`, true},
		{`""`, false},
		{`{}`, true},
		{`[]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assertEqual(t, "Truthy", tt.want, Truthy(json.RawMessage(tt.raw)))
		})
	}
}

func TestSessionState_Status(t *testing.T) {
	assertEqual(t, "live", StatusLive, SessionState{IsLive: true}.Status())
	assertEqual(t, "stale", StatusStale, SessionState{IsStale: true}.Status())
	assertEqual(t, "ended", StatusEnded, SessionState{HasSessionEnd: true}.Status())
	assertEqual(t, "no start", StatusEnded, SessionState{}.Status())
}

func assertEqual[T comparable](t *testing.T, name string, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}
