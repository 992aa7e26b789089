package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

const styles = `body{font-family:ui-monospace,monospace;margin:2rem;background:#11111b;color:#cdd6f4}
table{border-collapse:collapse;width:100%}td,th{padding:.25rem .5rem;text-align:left;border-bottom:1px solid #313244}
.cards{display:flex;gap:1rem;margin-bottom:1.5rem}.card{padding:.75rem 1rem;background:#1e1e2e;border-radius:6px}
.card strong{display:block;font-size:1.5rem}.bar{background:#89b4fa;height:.6rem}
.status-live{color:#a6e3a1}.status-stale{color:#f9e2af}.status-ended{color:#6c7086}.error{color:#f38ba8}`

// Dashboard renders the full page. The content block polls itself through htmx.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>hooklog</title>`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script><style>%s</style></head><body><h1>hooklog</h1>`, styles); err != nil {
			return err
		}
		if err := fileSelector(data).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<div id="dashboard" hx-get="%s" hx-trigger="%s" hx-swap="innerHTML">`,
			esc(string(buildDashboardURL(data.File))), refreshTrigger(data.RefreshSeconds)); err != nil {
			return err
		}
		if err := DashboardContent(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

func fileSelector(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(data.Files) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<nav>`); err != nil {
			return err
		}
		for i, f := range data.Files {
			selected := f == data.File || (data.File == "" && i == 0)
			label := esc(f)
			if selected {
				label = "<b>" + label + "</b>"
			}
			if _, err := fmt.Fprintf(w, `<a href="%s">%s</a> `, esc(string(buildDashboardURL(f))), label); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}

// DashboardContent is the fragment swapped in on every htmx refresh.
func DashboardContent(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Error != "" {
			_, err := fmt.Fprintf(w, `<p class="error">%s</p>`, esc(data.Error))
			return err
		}

		s := data.Summary
		live, stale := 0, 0
		for _, sess := range s.Sessions {
			if sess.IsLive {
				live++
			} else if sess.IsStale {
				stale++
			}
		}
		if _, err := fmt.Fprintf(w, `<div class="cards">`+
			`<div class="card"><strong>%s</strong>events</div><div class="card"><strong>%d</strong>sessions</div>`+
			`<div class="card"><strong class="status-live">%d</strong>live</div><div class="card"><strong class="status-stale">%d</strong>stale</div>`+
			`<div class="card"><strong>%d</strong>orphaned calls</div><div class="card"><strong>%d</strong>interrupts</div></div>`,
			formatCount(s.TotalEvents), s.SessionCount, live, stale, s.OrphanCount, s.InterruptCount); err != nil {
			return err
		}

		if err := sessionsTable(data).Render(ctx, w); err != nil {
			return err
		}
		if err := usageTable("Tools", s.ToolUsage).Render(ctx, w); err != nil {
			return err
		}
		return usageTable("Skills", s.SkillUsage).Render(ctx, w)
	})
}

func sessionsTable(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h2>Sessions</h2>`); err != nil {
			return err
		}
		rows := sessionRows(data.Summary.Sessions, data.Now)
		if len(rows) == 0 {
			_, err := io.WriteString(w, `<p>No sessions recorded.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table><tr><th>Session</th><th>Status</th><th>Events</th><th>Orphans</th><th>Interrupted</th><th>Last seen</th><th>Cwd</th></tr>`); err != nil {
			return err
		}
		for _, row := range rows {
			interrupted := ""
			if row.Interrupt {
				interrupted = "yes"
			}
			if _, err := fmt.Fprintf(w, `<tr><td><a href="%s" title="%s">%s</a></td><td class="%s">%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(string(buildSessionURL(row.ID, data.File))), esc(row.ID), esc(row.ShortID),
				statusClass(row.Status), row.Status, row.Events, row.Orphans, interrupted,
				esc(row.LastSeen), esc(row.Cwd)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}

func usageTable(title string, entries []domain.UsageEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h2>%s</h2>`, esc(title)); err != nil {
			return err
		}
		bars := usageBars(entries)
		if len(bars) == 0 {
			_, err := io.WriteString(w, `<p>None.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table>`); err != nil {
			return err
		}
		for _, b := range bars {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%d</td><td style="width:50%%"><div class="bar" style="width:%d%%"></div></td></tr>`,
				esc(b.Name), b.Count, b.Percent); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}
