package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Lifecycle tags written by the hook ingester. Unknown tags are kept as-is.
const (
	EventSessionStart       = "SessionStart"
	EventSessionEnd         = "SessionEnd"
	EventUserPromptSubmit   = "UserPromptSubmit"
	EventPreToolUse         = "PreToolUse"
	EventPostToolUse        = "PostToolUse"
	EventPostToolUseFailure = "PostToolUseFailure"
	EventNotification       = "Notification"
	EventStop               = "Stop"
	EventSubagentStart      = "SubagentStart"
	EventSubagentStop       = "SubagentStop"
)

// KnownEvents lists the lifecycle tags in the order the host emits them.
var KnownEvents = []string{
	EventSessionStart,
	EventUserPromptSubmit,
	EventPreToolUse,
	EventPostToolUse,
	EventPostToolUseFailure,
	EventNotification,
	EventStop,
	EventSubagentStart,
	EventSubagentStop,
	EventSessionEnd,
}

// UnknownSession is the bucket for events that carry no session_id.
const UnknownSession = "unknown"

// EventRecord is one line of the hook event log.
type EventRecord struct {
	Event          string     `json:"event"`
	SessionID      string     `json:"session_id,omitempty"`
	Ts             string     `json:"ts"`
	Cwd            string     `json:"cwd,omitempty"`
	PermissionMode string     `json:"permission_mode,omitempty"`
	Data           *EventData `json:"data,omitempty"`
}

// EventData is the event-type-dependent payload. Fields the ingester does not
// know about are preserved in Extra so newer hosts degrade gracefully.
type EventData struct {
	ToolName         string
	ToolUseID        string
	ToolInputSummary string
	Prompt           string
	StopHookActive   bool
	Success          *bool
	Error            string
	Message          string
	Reason           string
	Source           string
	AgentID          string
	AgentType        string
	Extra            map[string]json.RawMessage
}

// Session returns the session id, or UnknownSession when absent.
func (e EventRecord) Session() string {
	if e.SessionID == "" {
		return UnknownSession
	}
	return e.SessionID
}

func (e EventRecord) ToolName() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.ToolName
}

func (e EventRecord) ToolUseID() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.ToolUseID
}

func (e EventRecord) ToolInputSummary() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.ToolInputSummary
}

func (e EventRecord) Prompt() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.Prompt
}

func (e EventRecord) StopHookActive() bool {
	return e.Data != nil && e.Data.StopHookActive
}

// UnmarshalJSON decodes a record field by field. A field holding the wrong
// JSON type is treated as absent instead of failing the whole line.
func (e *EventRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("event record is null")
	}

	*e = EventRecord{
		Event:          rawString(raw["event"]),
		SessionID:      rawString(raw["session_id"]),
		Ts:             rawString(raw["ts"]),
		Cwd:            rawString(raw["cwd"]),
		PermissionMode: rawString(raw["permission_mode"]),
	}

	if d, ok := raw["data"]; ok && isObject(d) {
		var data EventData
		if err := json.Unmarshal(d, &data); err == nil {
			e.Data = &data
		}
	}
	return nil
}

var knownDataKeys = map[string]bool{
	"tool_name":          true,
	"tool_use_id":        true,
	"tool_input_summary": true,
	"prompt":             true,
	"stop_hook_active":   true,
	"success":            true,
	"error":              true,
	"message":            true,
	"reason":             true,
	"source":             true,
	"agent_id":           true,
	"agent_type":         true,
}

func (d *EventData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = EventData{
		ToolName:         rawString(raw["tool_name"]),
		ToolUseID:        rawString(raw["tool_use_id"]),
		ToolInputSummary: rawString(raw["tool_input_summary"]),
		Prompt:           rawString(raw["prompt"]),
		StopHookActive:   Truthy(raw["stop_hook_active"]),
		Error:            rawString(raw["error"]),
		Message:          rawString(raw["message"]),
		Reason:           rawString(raw["reason"]),
		Source:           rawString(raw["source"]),
		AgentID:          rawString(raw["agent_id"]),
		AgentType:        rawString(raw["agent_type"]),
	}
	if s, ok := raw["success"]; ok && !isNull(s) {
		v := Truthy(s)
		d.Success = &v
	}

	for k, v := range raw {
		if knownDataKeys[k] {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}
		d.Extra[k] = v
	}
	return nil
}

func (d EventData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+8)
	for k, v := range d.Extra {
		out[k] = v
	}
	putString(out, "tool_name", d.ToolName)
	putString(out, "tool_use_id", d.ToolUseID)
	putString(out, "tool_input_summary", d.ToolInputSummary)
	putString(out, "prompt", d.Prompt)
	putString(out, "error", d.Error)
	putString(out, "message", d.Message)
	putString(out, "reason", d.Reason)
	putString(out, "source", d.Source)
	putString(out, "agent_id", d.AgentID)
	putString(out, "agent_type", d.AgentType)
	if d.StopHookActive {
		out["stop_hook_active"] = true
	}
	if d.Success != nil {
		out["success"] = *d.Success
	}
	return json.Marshal(out)
}

// Truthy reports whether a raw JSON value would be considered true by a
// loosely typed producer: true, a non-zero number, a non-empty string, or any
// object or array.
func Truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch v[0] {
	case 't':
		return string(v) == "true"
	case 'f', 'n':
		return false
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return s != ""
	case '{', '[':
		return true
	default:
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f != 0
	}
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isObject(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && v[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
