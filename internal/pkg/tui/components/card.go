package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/devstefancho/claude-hook-logger/internal/pkg/tui/theme"
)

// MetricCard displays a single counter
type MetricCard struct {
	Title string
	Value string
	Style *lipgloss.Style // overrides the value style when set
}

func (m MetricCard) View(width int) string {
	styles := theme.Default()

	valueStyle := styles.Bold
	if m.Style != nil {
		valueStyle = *m.Style
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Muted.Render(m.Title),
		valueStyle.Render(m.Value),
	)
	return styles.Card.Width(width).Render(content)
}

// RenderMetricCards lays the cards out in one row, wrapping when the
// terminal is too narrow.
func RenderMetricCards(cards []MetricCard, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	if totalWidth <= 0 {
		totalWidth = 80
	}

	const cardWidth = 14
	perRow := totalWidth / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		row := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			row = append(row, c.View(cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
