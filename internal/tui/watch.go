// Package tui implements the live terminal view of the hook event log.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/pkg/tui/components"
	"github.com/devstefancho/claude-hook-logger/internal/pkg/tui/theme"
	"github.com/devstefancho/claude-hook-logger/internal/util"
)

// RefreshInterval re-summarizes without writes so live sessions age into
// stale ones on screen.
const RefreshInterval = 15 * time.Second

const (
	watchTop      = 8
	watchSessions = 10
)

// Source produces the summary shown by the view.
type Source interface {
	Dashboard(ctx context.Context, file string, top int) (domain.Summary, error)
	Now() time.Time
}

// Model is the bubbletea model behind `hooklog watch`.
type Model struct {
	src     Source
	file    string
	changes <-chan struct{}

	summary  domain.Summary
	now      time.Time
	loaded   bool
	err      error
	width    int
	styles   *theme.Styles
	helpBar  components.HelpBar
	interval time.Duration
}

// NewModel builds the view. changes may be nil to disable file watching.
func NewModel(src Source, file string, changes <-chan struct{}) *Model {
	return &Model{
		src:      src,
		file:     file,
		changes:  changes,
		styles:   theme.Default(),
		interval: RefreshInterval,
		helpBar: components.NewHelpBar(
			components.KeyBinding{Key: "r", Desc: "refresh"},
			components.KeyBinding{Key: "q", Desc: "quit"},
		),
	}
}

type summaryLoadedMsg struct {
	summary domain.Summary
	now     time.Time
}

type summaryErrorMsg struct {
	err error
}

type tickMsg time.Time

type logChangedMsg struct{}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick(), m.waitForChange())
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		sum, err := m.src.Dashboard(context.Background(), m.file, watchTop)
		if err != nil {
			return summaryErrorMsg{fmt.Errorf("load summary: %w", err)}
		}
		return summaryLoadedMsg{summary: sum, now: m.src.Now()}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return logChangedMsg{}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.load()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case summaryLoadedMsg:
		m.loaded = true
		m.err = nil
		m.summary = msg.summary
		m.now = msg.now

	case summaryErrorMsg:
		m.loaded = true
		m.err = msg.err

	case tickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case logChangedMsg:
		return m, tea.Batch(m.load(), m.waitForChange())
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		m.styles.Title.Render("HOOKLOG"), "  ", m.styles.Muted.Render(m.fileLabel()))

	var body string
	switch {
	case !m.loaded:
		body = m.styles.Muted.Render("Loading events...")
	case m.err != nil:
		body = m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderMetricCards(m.cards(), m.width),
			"",
			m.renderSessions(),
			"",
			lipgloss.JoinHorizontal(lipgloss.Top,
				m.renderUsage("Top tools", m.summary.ToolUsage), "    ",
				m.renderUsage("Top skills", m.summary.SkillUsage)),
		)
	}

	footer := m.helpBar.View()
	if m.loaded && !m.now.IsZero() {
		footer += m.styles.Muted.Render("  updated " + m.now.Local().Format("15:04:05"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func (m *Model) fileLabel() string {
	if m.file == "" {
		return "current log"
	}
	return m.file
}

func (m *Model) cards() []components.MetricCard {
	live, stale := countStatus(m.summary.Sessions)
	return []components.MetricCard{
		{Title: "Events", Value: util.FormatNumber(m.summary.TotalEvents)},
		{Title: "Sessions", Value: fmt.Sprintf("%d", m.summary.SessionCount)},
		{Title: "Live", Value: fmt.Sprintf("%d", live), Style: &m.styles.Live},
		{Title: "Stale", Value: fmt.Sprintf("%d", stale), Style: &m.styles.Stale},
		{Title: "Orphaned", Value: fmt.Sprintf("%d", m.summary.OrphanCount)},
		{Title: "Interrupts", Value: fmt.Sprintf("%d", m.summary.InterruptCount)},
	}
}

// renderSessions lists the sessions that are still open, most recent first.
func (m *Model) renderSessions() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Open sessions"))
	b.WriteString("\n")

	shown := 0
	for _, s := range m.summary.Sessions {
		if !s.IsLive && !s.IsStale {
			continue
		}
		if shown == watchSessions {
			break
		}
		shown++
		status := s.Status()
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			m.styles.Status(status).Render(fmt.Sprintf("%-5s", status)),
			m.styles.Bold.Render(util.ShortID(s.SessionID)),
			m.styles.Body.Render(fmt.Sprintf("%4d events", s.EventCount)),
			m.styles.Muted.Render(util.FormatAgo(s.LastTs, m.now)+"  "+s.Cwd),
		)
	}
	if shown == 0 {
		b.WriteString(m.styles.Muted.Render("No open sessions"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderUsage(title string, entries []domain.UsageEntry) string {
	lines := []string{m.styles.Subtitle.Render(title)}
	if len(entries) == 0 {
		lines = append(lines, m.styles.Muted.Render("none"))
	}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s",
			m.styles.Body.Render(fmt.Sprintf("%-24s", util.TruncateRunes(e.Name, 24))),
			m.styles.Bold.Render(fmt.Sprintf("%5d", e.Count))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func countStatus(sessions []domain.SessionState) (live, stale int) {
	for _, s := range sessions {
		switch {
		case s.IsLive:
			live++
		case s.IsStale:
			stale++
		}
	}
	return live, stale
}

// Run starts the full-screen view and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, src Source, file string, changes <-chan struct{}) error {
	p := tea.NewProgram(NewModel(src, file, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
