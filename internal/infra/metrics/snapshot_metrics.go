package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jovz/residence-hub/internal/application/refresh"
)

var _ refresh.Metrics = (*snapshotMetrics)(nil)

type snapshotMetrics struct {
	reloadDuration metric.Float64Histogram
	tenantCount    metric.Int64Gauge
	roomCount      metric.Int64Gauge
	staleRefs      metric.Int64Gauge
}

// newSnapshotMetrics creates a new snapshotMetrics instance.
func newSnapshotMetrics(mp metric.MeterProvider) (*snapshotMetrics, error) {
	meter := mp.Meter(namespace, metric.WithInstrumentationVersion("v0.1.0"))

	m := new(snapshotMetrics)
	var err error

	if m.reloadDuration, err = meter.Float64Histogram(
		"snapshot_reload_duration_seconds",
		metric.WithDescription("Duration of full snapshot reloads in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.tenantCount, err = meter.Int64Gauge(
		"snapshot_tenants",
		metric.WithDescription("Number of tenants in the current snapshot"),
	); err != nil {
		return nil, err
	}

	if m.roomCount, err = meter.Int64Gauge(
		"snapshot_rooms",
		metric.WithDescription("Number of rooms in the current snapshot"),
	); err != nil {
		return nil, err
	}

	if m.staleRefs, err = meter.Int64Gauge(
		"snapshot_stale_references",
		metric.WithDescription("Tenants in the current snapshot referencing an unregistered room"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *snapshotMetrics) ObserveReloadDuration(ctx context.Context, seconds float64, success bool) {
	m.reloadDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

func (m *snapshotMetrics) SetSnapshotSizes(ctx context.Context, tenants, rooms int) {
	m.tenantCount.Record(ctx, int64(tenants))
	m.roomCount.Record(ctx, int64(rooms))
}

func (m *snapshotMetrics) SetStaleReferences(ctx context.Context, count int) {
	m.staleRefs.Record(ctx, int64(count))
}
