package otel

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

var (
	_ ports.MetricsExporter = (*Exporter)(nil)
	_ ports.MetricsExporter = (*NoOpExporter)(nil)
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Gauge[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	out := make(map[string]metricdata.Gauge[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if g, ok := m.Data.(metricdata.Gauge[int64]); ok {
				out[m.Name] = g
			}
		}
	}
	return out
}

func pointValue(g metricdata.Gauge[int64], key, value string) (int64, bool) {
	for _, dp := range g.DataPoints {
		if key == "" {
			return dp.Value, true
		}
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			return dp.Value, true
		}
	}
	return 0, false
}

func TestExporter_ObservesSummary(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	e, err := newExporter(ctx, reader)
	if err != nil {
		t.Fatalf("newExporter failed: %v", err)
	}
	defer func() { _ = e.Close(ctx) }()

	calls := 0
	err = e.Register(func(context.Context) (domain.Summary, error) {
		calls++
		return domain.Summary{
			TotalEvents:    12,
			OrphanCount:    2,
			InterruptCount: 1,
			Sessions: []domain.SessionState{
				{SessionID: "a", IsLive: true},
				{SessionID: "b", IsStale: true},
				{SessionID: "c", HasSessionEnd: true},
				{SessionID: "d", HasSessionEnd: true},
			},
			ToolUsage: []domain.UsageEntry{{Name: "Read", Count: 6}, {Name: "Bash", Count: 2}},
		}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	gauges := collect(t, reader)
	if calls != 1 {
		t.Errorf("expected source to be called once per collection, got %d", calls)
	}

	checks := []struct {
		metric string
		key    string
		value  string
		want   int64
	}{
		{"hooklog_events_total", "", "", 12},
		{"hooklog_orphaned_calls", "", "", 2},
		{"hooklog_interrupts", "", "", 1},
		{"hooklog_sessions", "status", "live", 1},
		{"hooklog_sessions", "status", "stale", 1},
		{"hooklog_sessions", "status", "ended", 2},
		{"hooklog_tool_usage", "tool_name", "Read", 6},
		{"hooklog_tool_usage", "tool_name", "Bash", 2},
	}
	for _, c := range checks {
		got, ok := pointValue(gauges[c.metric], c.key, c.value)
		if !ok {
			t.Errorf("%s{%s=%s} missing", c.metric, c.key, c.value)
			continue
		}
		if got != c.want {
			t.Errorf("%s{%s=%s} = %d, want %d", c.metric, c.key, c.value, got, c.want)
		}
	}
}

func TestExporter_SourceErrorSkipsObservations(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	e, err := newExporter(ctx, reader)
	if err != nil {
		t.Fatalf("newExporter failed: %v", err)
	}
	defer func() { _ = e.Close(ctx) }()

	if err := e.Register(func(context.Context) (domain.Summary, error) {
		return domain.Summary{}, errors.New("log unreadable")
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var rm metricdata.ResourceMetrics
	_ = reader.Collect(ctx, &rm)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if g, ok := m.Data.(metricdata.Gauge[int64]); ok && len(g.DataPoints) > 0 {
				t.Errorf("%s should have no data points", m.Name)
			}
		}
	}
}

func TestNew_DisabledReturnsNoOp(t *testing.T) {
	exp, err := New(context.Background(), Config{Enabled: false, Endpoint: "localhost:4317"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := exp.(*NoOpExporter); !ok {
		t.Errorf("expected NoOpExporter, got %T", exp)
	}
	if err := exp.Register(nil); err != nil {
		t.Errorf("NoOp Register failed: %v", err)
	}
	if err := exp.Close(context.Background()); err != nil {
		t.Errorf("NoOp Close failed: %v", err)
	}
}

func TestNewExporter_RequiresEndpoint(t *testing.T) {
	if _, err := NewExporter(context.Background(), Config{Enabled: true}); err == nil {
		t.Error("expected error without endpoint")
	}
}
