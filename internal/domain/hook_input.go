package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/devstefancho/claude-hook-logger/internal/util"
)

const (
	maxSummaryRunes = 200
	maxPromptRunes  = 1000
	maxErrorRunes   = 500
)

// HookInput is the JSON payload the host runtime writes to a hook command's
// stdin. Only hook_event_name is required; every other field depends on the
// event type.
type HookInput struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	PermissionMode string          `json:"permission_mode"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	ToolResponse   json.RawMessage `json:"tool_response"`
	ToolUseID      string          `json:"tool_use_id"`
	Prompt         string          `json:"prompt"`
	StopHookActive json.RawMessage `json:"stop_hook_active"`
	Error          json.RawMessage `json:"error"`
	Message        string          `json:"message"`
	Reason         string          `json:"reason"`
	Source         string          `json:"source"`
	AgentID        string          `json:"agent_id"`
	AgentType      string          `json:"agent_type"`
}

// ParseHookInput decodes a hook payload. Unknown event names are accepted.
func ParseHookInput(data []byte) (*HookInput, error) {
	var in HookInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}
	if in.HookEventName == "" {
		return nil, fmt.Errorf("missing hook_event_name")
	}
	return &in, nil
}

// ToRecord converts the payload into the log line shape, stamped with ts.
func (in *HookInput) ToRecord(ts string) EventRecord {
	rec := EventRecord{
		Event:          in.HookEventName,
		SessionID:      in.SessionID,
		Ts:             ts,
		Cwd:            in.Cwd,
		PermissionMode: in.PermissionMode,
	}

	data := EventData{
		ToolName:         in.ToolName,
		ToolUseID:        in.ToolUseID,
		ToolInputSummary: SummarizeToolInput(in.ToolName, in.ToolInput),
		Prompt:           util.TruncateRunes(in.Prompt, maxPromptRunes),
		StopHookActive:   Truthy(in.StopHookActive),
		Error:            util.TruncateRunes(errorText(in.Error), maxErrorRunes),
		Message:          in.Message,
		Reason:           in.Reason,
		Source:           in.Source,
		AgentID:          in.AgentID,
		AgentType:        in.AgentType,
	}
	switch in.HookEventName {
	case EventPostToolUse:
		ok := true
		data.Success = &ok
	case EventPostToolUseFailure:
		ok := false
		data.Success = &ok
	}

	if !data.empty() {
		rec.Data = &data
	}
	return rec
}

func (d EventData) empty() bool {
	return d.ToolName == "" && d.ToolUseID == "" && d.ToolInputSummary == "" &&
		d.Prompt == "" && !d.StopHookActive && d.Success == nil && d.Error == "" &&
		d.Message == "" && d.Reason == "" && d.Source == "" && d.AgentID == "" &&
		d.AgentType == "" && len(d.Extra) == 0
}

// summaryKeys maps a tool to the input fields that best describe a call,
// in order of preference.
var summaryKeys = map[string][]string{
	"Bash":         {"command"},
	"Read":         {"file_path"},
	"Write":        {"file_path"},
	"Edit":         {"file_path"},
	"MultiEdit":    {"file_path"},
	"NotebookEdit": {"notebook_path"},
	"Grep":         {"pattern"},
	"Glob":         {"pattern"},
	"WebFetch":     {"url"},
	"WebSearch":    {"query"},
	"Task":         {"description", "subagent_type"},
	"Skill":        {"skill", "command", "name"},
	"SlashCommand": {"command"},
	"TodoWrite":    {},
}

var fallbackSummaryKeys = []string{
	"command", "file_path", "path", "pattern", "url", "query", "description", "skill", "name", "prompt",
}

// SummarizeToolInput picks a single human-readable string out of a tool's
// input object, truncated for the log.
func SummarizeToolInput(toolName string, raw json.RawMessage) string {
	if !isObject(raw) {
		return ""
	}
	var input map[string]json.RawMessage
	if err := json.Unmarshal(raw, &input); err != nil {
		return ""
	}

	keys, ok := summaryKeys[toolName]
	if !ok {
		keys = fallbackSummaryKeys
	}
	for _, k := range keys {
		if s := rawString(input[k]); s != "" {
			return util.TruncateRunes(s, maxSummaryRunes)
		}
	}
	return ""
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	if v := bytes.TrimSpace(raw); len(v) > 0 && v[0] == '"' {
		return rawString(raw)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}
