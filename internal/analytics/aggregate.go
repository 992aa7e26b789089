// Package analytics derives session, tool and skill views from a hook event
// sequence. Every function is pure: callers pass the events and the clock.
package analytics

import (
	"sort"
	"strings"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

const (
	// SkillTool is the tool name the host uses for skill invocations.
	SkillTool = "Skill"
	// UnknownSkill names a Skill call that did not say which skill it ran.
	UnknownSkill = "unknown"
)

// builtinCommands are slash commands handled by the host itself. A prompt
// starting with one of these is not a skill use.
var builtinCommands = commandSet(
	"add-dir", "agents", "bashes", "bug", "clear", "compact", "config",
	"context", "cost", "doctor", "exit", "export", "help", "hooks", "ide",
	"init", "install-github-app", "login", "logout", "mcp", "memory", "model",
	"output-style", "permissions", "plugin", "pr-comments", "privacy-settings",
	"quit", "release-notes", "resume", "review", "rewind", "security-review",
	"status", "statusline", "terminal-setup", "todos", "upgrade", "usage", "vim",
)

func commandSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set["/"+n] = true
	}
	return set
}

// IsBuiltinCommand reports whether token (including its leading slash) names
// a host built-in. The comparison ignores case.
func IsBuiltinCommand(token string) bool {
	return builtinCommands[strings.ToLower(token)]
}

// SkillFromPrompt returns the skill named by a slash-prefixed prompt, or ""
// when the prompt is not a skill invocation.
func SkillFromPrompt(prompt string) string {
	p := strings.TrimSpace(prompt)
	if !strings.HasPrefix(p, "/") {
		return ""
	}
	fields := strings.Fields(p)
	token := fields[0]
	if IsBuiltinCommand(token) {
		return ""
	}
	return strings.TrimPrefix(token, "/")
}

// counter is an insertion-ordered histogram.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// entries returns the histogram sorted by count descending. Ties keep
// first-seen order.
func (c *counter) entries() []domain.UsageEntry {
	out := make([]domain.UsageEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, domain.UsageEntry{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// usage accumulates the tool and skill histograms shared by the summary and
// the session detail.
type usage struct {
	tools  *counter
	skills *counter
}

func newUsage() *usage {
	return &usage{tools: newCounter(), skills: newCounter()}
}

// observe counts e. Every event carrying a tool name counts toward that tool,
// so a completed call contributes once for the request and once for the
// completion.
func (u *usage) observe(e domain.EventRecord) {
	tool := e.ToolName()
	if tool != "" {
		u.tools.add(tool)
	}

	switch e.Event {
	case domain.EventPreToolUse:
		if tool == SkillTool {
			name := e.ToolInputSummary()
			if name == "" {
				name = UnknownSkill
			}
			u.skills.add(name)
		}
	case domain.EventUserPromptSubmit:
		if name := SkillFromPrompt(e.Prompt()); name != "" {
			u.skills.add(name)
		}
	}
}

// ToolUsage returns the tool histogram of events.
func ToolUsage(events []domain.EventRecord) []domain.UsageEntry {
	u := newUsage()
	for _, e := range events {
		u.observe(e)
	}
	return u.tools.entries()
}

// SkillUsage returns the skill histogram of events.
func SkillUsage(events []domain.EventRecord) []domain.UsageEntry {
	u := newUsage()
	for _, e := range events {
		u.observe(e)
	}
	return u.skills.entries()
}

// TopN returns at most n entries. n <= 0 returns all of them.
func TopN(entries []domain.UsageEntry, n int) []domain.UsageEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}
