package otel

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

const (
	serviceName    = "hooklog"
	serviceVersion = "1.0.0"
)

// Exporter publishes summary gauges to an OTEL Collector. Gauge values are
// computed from a fresh summary each time the reader collects.
type Exporter struct {
	provider   *sdkmetric.MeterProvider
	meter      metric.Meter
	events     metric.Int64ObservableGauge
	sessions   metric.Int64ObservableGauge
	orphans    metric.Int64ObservableGauge
	interrupts metric.Int64ObservableGauge
	toolUsage  metric.Int64ObservableGauge

	mu           sync.Mutex
	registration metric.Registration
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	e, err := newExporter(ctx, sdkmetric.NewPeriodicReader(exp))
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

func newExporter(ctx context.Context, reader sdkmetric.Reader) (*Exporter, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider, meter: meter}

	gauges := []struct {
		dst  *metric.Int64ObservableGauge
		name string
		desc string
		unit string
	}{
		{&e.events, "hooklog_events_total", "Events in the current log", "{event}"},
		{&e.sessions, "hooklog_sessions", "Sessions by status", "{session}"},
		{&e.orphans, "hooklog_orphaned_calls", "Tool calls without a completion", "{call}"},
		{&e.interrupts, "hooklog_interrupts", "Stops flagged while a stop hook was active", "{interrupt}"},
		{&e.toolUsage, "hooklog_tool_usage", "Events referencing each tool", "{event}"},
	}
	for _, g := range gauges {
		gauge, err := meter.Int64ObservableGauge(g.name,
			metric.WithDescription(g.desc),
			metric.WithUnit(g.unit),
		)
		if err != nil {
			return nil, fmt.Errorf("creating %s gauge: %w", g.name, err)
		}
		*g.dst = gauge
	}

	return e, nil
}

// Register starts observing src. A later call replaces the earlier source.
func (e *Exporter) Register(src ports.SummarySource) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.registration != nil {
		if err := e.registration.Unregister(); err != nil {
			return fmt.Errorf("unregistering callback: %w", err)
		}
		e.registration = nil
	}

	reg, err := e.meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		sum, err := src(ctx)
		if err != nil {
			return err
		}
		e.observe(o, sum)
		return nil
	}, e.events, e.sessions, e.orphans, e.interrupts, e.toolUsage)
	if err != nil {
		return fmt.Errorf("registering callback: %w", err)
	}
	e.registration = reg
	return nil
}

func (e *Exporter) observe(o metric.Observer, sum domain.Summary) {
	o.ObserveInt64(e.events, int64(sum.TotalEvents))
	o.ObserveInt64(e.orphans, int64(sum.OrphanCount))
	o.ObserveInt64(e.interrupts, int64(sum.InterruptCount))

	byStatus := map[string]int64{
		domain.StatusLive:  0,
		domain.StatusStale: 0,
		domain.StatusEnded: 0,
	}
	for _, s := range sum.Sessions {
		byStatus[s.Status()]++
	}
	for status, n := range byStatus {
		o.ObserveInt64(e.sessions, n, metric.WithAttributes(attribute.String("status", status)))
	}

	for _, u := range sum.ToolUsage {
		o.ObserveInt64(e.toolUsage, int64(u.Count), metric.WithAttributes(attribute.String("tool_name", u.Name)))
	}
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.registration != nil {
		_ = e.registration.Unregister()
		e.registration = nil
	}
	e.mu.Unlock()
	return e.provider.Shutdown(ctx)
}
