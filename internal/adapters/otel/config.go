package otel

import (
	"context"

	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// New returns an OTLP exporter when cfg enables one, and a no-op exporter
// otherwise.
func New(ctx context.Context, cfg Config) (ports.MetricsExporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return NewNoOpExporter(), nil
	}
	return NewExporter(ctx, cfg)
}
