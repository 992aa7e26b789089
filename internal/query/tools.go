package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/devstefancho/claude-hook-logger/internal/util"
)

// Tool is a named query callable with JSON arguments.
type Tool interface {
	Name() string
	Description() string
	InputSchema() json.RawMessage
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// ToolInfo is the listing form of a tool.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Registry maps tool names to tools.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry returns a registry holding every query tool bound to svc.
func NewRegistry(svc *Service) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		&dashboardTool{svc},
		&listSessionsTool{svc},
		&sessionDetailTool{svc},
		&recentActivityTool{svc},
		&usageTool{svc},
		&searchTool{svc},
		&listFilesTool{svc},
	} {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// List returns tool metadata sorted by name.
func (r *Registry) List() []ToolInfo {
	out := make([]ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, ToolInfo{Name: t.Name(), Description: t.Description(), InputSchema: t.InputSchema()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.Execute(ctx, args)
}

const fileProperty = `"file": {
				"type": "string",
				"description": "Log file name, e.g. hook-events.2026-10-16.jsonl. Defaults to the current log"
			}`

type dashboardTool struct{ svc *Service }

func (t *dashboardTool) Name() string { return "get_dashboard" }

func (t *dashboardTool) Description() string {
	return "Summary of the hook event log: totals, sessions, top tools and skills, orphaned calls and interrupts"
}

func (t *dashboardTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"top": {
				"type": "integer",
				"description": "Maximum tool and skill entries to return",
				"default": 10
			}
		}
	}`)
}

func (t *dashboardTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.Dashboard(ctx, util.ToString(args["file"]), util.ToInt(args["top"], DefaultTop))
}

type listSessionsTool struct{ svc *Service }

func (t *listSessionsTool) Name() string { return "list_sessions" }

func (t *listSessionsTool) Description() string {
	return "List sessions, most recently active first, optionally filtered by status and last activity"
}

func (t *listSessionsTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"status": {
				"type": "string",
				"enum": ["all", "live", "stale", "ended"],
				"default": "all"
			},
			"since": {
				"type": "string",
				"description": "Only sessions active at or after this ISO-8601 timestamp"
			},
			"limit": {
				"type": "integer",
				"description": "Maximum number of sessions to return",
				"default": 50
			}
		}
	}`)
}

func (t *listSessionsTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.Sessions(ctx, util.ToString(args["file"]), SessionFilter{
		Status: util.ToString(args["status"]),
		Since:  util.ToString(args["since"]),
		Limit:  util.ToInt(args["limit"], 50),
	})
}

type sessionDetailTool struct{ svc *Service }

func (t *sessionDetailTool) Name() string { return "get_session_detail" }

func (t *sessionDetailTool) Description() string {
	return "Events and tool/skill usage of one session. Accepts a full session id or a prefix"
}

func (t *sessionDetailTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"session_id": {
				"type": "string",
				"description": "Session id or prefix (e.g. the first 8 characters)"
			},
			"max_events": {
				"type": "integer",
				"description": "Keep only the most recent N events",
				"default": 200
			}
		},
		"required": ["session_id"]
	}`)
}

func (t *sessionDetailTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.SessionDetail(ctx,
		util.ToString(args["file"]),
		util.ToString(args["session_id"]),
		util.ToInt(args["max_events"], DefaultMaxEvents),
	)
}

type recentActivityTool struct{ svc *Service }

func (t *recentActivityTool) Name() string { return "get_recent_activity" }

func (t *recentActivityTool) Description() string {
	return "Summary of the events in a recent window, given as minutes back from now or an explicit start"
}

func (t *recentActivityTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"minutes": {
				"type": "integer",
				"description": "Window size in minutes",
				"default": 30,
				"minimum": 1
			},
			"since": {
				"type": "string",
				"description": "ISO-8601 start of the window. Overrides minutes"
			}
		}
	}`)
}

func (t *recentActivityTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.Recent(ctx, util.ToString(args["file"]), RecentQuery{
		Since:   util.ToString(args["since"]),
		Minutes: util.ToInt(args["minutes"], 0),
	})
}

type usageTool struct{ svc *Service }

func (t *usageTool) Name() string { return "get_usage" }

func (t *usageTool) Description() string {
	return "Tool and skill usage counts, optionally scoped to a session and time window"
}

func (t *usageTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"type": {
				"type": "string",
				"enum": ["tools", "skills", "both"],
				"default": "both"
			},
			"session_id": {
				"type": "string",
				"description": "Session id or prefix"
			},
			"since": {"type": "string"},
			"until": {"type": "string"},
			"top": {
				"type": "integer",
				"default": 10
			}
		}
	}`)
}

func (t *usageTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.Usage(ctx, util.ToString(args["file"]), UsageQuery{
		Type:    util.ToString(args["type"]),
		Session: util.ToString(args["session_id"]),
		Since:   util.ToString(args["since"]),
		Until:   util.ToString(args["until"]),
		Top:     util.ToInt(args["top"], DefaultTop),
	})
}

type searchTool struct{ svc *Service }

func (t *searchTool) Name() string { return "search_events" }

func (t *searchTool) Description() string {
	return "Find events by type, tool name, session prefix and case-insensitive text in tool input or prompt"
}

func (t *searchTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			` + fileProperty + `,
			"event": {"type": "string", "description": "Exact event type, e.g. PreToolUse"},
			"tool": {"type": "string", "description": "Exact tool name, e.g. Bash"},
			"text": {"type": "string", "description": "Substring of the tool input summary or prompt"},
			"session_id": {"type": "string", "description": "Session id or prefix"},
			"limit": {"type": "integer", "default": 50}
		}
	}`)
}

func (t *searchTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.svc.Search(ctx, util.ToString(args["file"]), SearchCriteria{
		Event:   util.ToString(args["event"]),
		Tool:    util.ToString(args["tool"]),
		Text:    util.ToString(args["text"]),
		Session: util.ToString(args["session_id"]),
		Limit:   util.ToInt(args["limit"], 0),
	})
}

type listFilesTool struct{ svc *Service }

func (t *listFilesTool) Name() string { return "list_log_files" }

func (t *listFilesTool) Description() string {
	return "List the available hook event log files, most recent first"
}

func (t *listFilesTool) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *listFilesTool) Execute(ctx context.Context, _ map[string]any) (any, error) {
	files, err := t.svc.Files(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"files": files, "total": len(files)}, nil
}
