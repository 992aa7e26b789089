package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// Styles contains all shared TUI styles
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	Card lipgloss.Style

	Live  lipgloss.Style
	Stale lipgloss.Style
	Ended lipgloss.Style

	Error lipgloss.Style
	Info  lipgloss.Style
}

var (
	defaultStyles *Styles
	once          sync.Once
)

// Default returns the singleton default Styles instance
func Default() *Styles {
	once.Do(func() {
		defaultStyles = newStyles()
	})
	return defaultStyles
}

// Status picks the style for a session status.
func (s *Styles) Status(status string) lipgloss.Style {
	switch status {
	case domain.StatusLive:
		return s.Live
	case domain.StatusStale:
		return s.Stale
	default:
		return s.Ended
	}
}

func newStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Subtitle: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(LightGray),

		Muted: lipgloss.NewStyle().
			Foreground(DimGray),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),

		Help: lipgloss.NewStyle().
			Foreground(DimGray).
			MarginTop(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(LightGray).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGray).
			Padding(0, 1),

		Live: lipgloss.NewStyle().
			Foreground(Live).
			Bold(true),

		Stale: lipgloss.NewStyle().
			Foreground(Stale),

		Ended: lipgloss.NewStyle().
			Foreground(Ended),

		Error: lipgloss.NewStyle().
			Foreground(Error),

		Info: lipgloss.NewStyle().
			Foreground(Info),
	}
}
