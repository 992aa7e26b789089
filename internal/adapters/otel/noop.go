package otel

import (
	"context"

	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) Register(src ports.SummarySource) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
