package ports

import (
	"context"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
)

// SummarySource produces a fresh summary of the current event log.
type SummarySource func(ctx context.Context) (domain.Summary, error)

// MetricsExporter publishes summary-derived metrics to an external
// observability system.
type MetricsExporter interface {
	// Register starts observing src. Values are computed at collection time.
	Register(src SummarySource) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
