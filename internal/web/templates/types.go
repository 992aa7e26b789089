package templates

import (
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

type DashboardData struct {
	File           string // selected log file, empty for the active one
	Files          []string
	Summary        domain.Summary
	Now            time.Time
	RefreshSeconds int
	Error          string
}

type SessionRow struct {
	ID        string
	ShortID   string
	Status    string
	Events    int
	Orphans   int
	Interrupt bool
	Cwd       string
	LastSeen  string
}

type UsageBar struct {
	Name    string
	Count   int
	Percent int // width relative to the busiest entry
}
