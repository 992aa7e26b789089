package web

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/shared/middleware"
	"github.com/devstefancho/claude-hook-logger/internal/web/templates"
)

const (
	dashboardTop     = 15
	dashboardRefresh = 5
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var data templates.DashboardData
	file, err := fileParam(r)
	if err != nil {
		data = templates.DashboardData{Now: s.queries.Now(), RefreshSeconds: dashboardRefresh, Error: err.Error()}
	} else {
		data, err = s.fetchDashboardData(ctx, file)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		w.WriteHeader(statusFor(err))
	}
	if middleware.IsHTMX(r) {
		_ = templates.DashboardContent(data).Render(ctx, w)
		return
	}
	_ = templates.Dashboard(data).Render(ctx, w)
}

// fetchDashboardData loads the file list and the summary concurrently. On
// failure the returned data carries the message for the error block.
func (s *Server) fetchDashboardData(ctx context.Context, file string) (templates.DashboardData, error) {
	var (
		files   []string
		summary domain.Summary
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		files, err = s.queries.Files(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		summary, err = s.queries.Dashboard(gctx, file, dashboardTop)
		return err
	})

	data := templates.DashboardData{
		File:           file,
		Now:            s.queries.Now(),
		RefreshSeconds: dashboardRefresh,
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("file", file).Msg("dashboard load failed")
		data.Error = err.Error()
		return data, err
	}
	data.Files = files
	data.Summary = summary
	return data, nil
}
