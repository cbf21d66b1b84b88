package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jovz/residence-hub/internal/application/workflow"
)

var _ workflow.Metrics = (*workflowMetrics)(nil)

type workflowMetrics struct {
	workflowSuccess  metric.Int64Counter
	workflowFailure  metric.Int64Counter
	workflowDuration metric.Float64Histogram
}

// newWorkflowMetrics creates a new workflowMetrics instance.
func newWorkflowMetrics(mp metric.MeterProvider) (*workflowMetrics, error) {
	meter := mp.Meter(namespace, metric.WithInstrumentationVersion("v0.1.0"))

	m := new(workflowMetrics)
	var err error

	if m.workflowSuccess, err = meter.Int64Counter(
		"workflow_success_total",
		metric.WithDescription("Total number of successfully completed workflows"),
	); err != nil {
		return nil, err
	}

	if m.workflowFailure, err = meter.Int64Counter(
		"workflow_failure_total",
		metric.WithDescription("Total number of workflows aborted by a failing step"),
	); err != nil {
		return nil, err
	}

	if m.workflowDuration, err = meter.Float64Histogram(
		"workflow_duration_seconds",
		metric.WithDescription("Duration of workflows in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *workflowMetrics) IncWorkflowSuccess(ctx context.Context, operation string) {
	m.workflowSuccess.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// IncWorkflowFailure records an aborted workflow together with the step that
// failed, which is the dimension on-call actually filters by.
func (m *workflowMetrics) IncWorkflowFailure(ctx context.Context, operation, step string) {
	m.workflowFailure.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("step", step),
	))
}

func (m *workflowMetrics) ObserveWorkflowDuration(ctx context.Context, operation string, seconds float64) {
	m.workflowDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
