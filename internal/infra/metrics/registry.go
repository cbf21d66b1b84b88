package metrics

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/jovz/residence-hub/internal/api/mid"
	"github.com/jovz/residence-hub/internal/application/refresh"
	"github.com/jovz/residence-hub/internal/application/workflow"
)

const namespace = "residence_hub"

// Registry provides access to all metric implementations.
// It centralizes the creation and management of metrics instances.
type Registry struct {
	API      mid.APIMetrics
	Workflow workflow.Metrics
	Snapshot refresh.Metrics
}

// NewRegistry creates and initializes all metrics implementations.
// It uses a single meter provider to ensure consistent configuration.
func NewRegistry(mp metric.MeterProvider) (*Registry, error) {
	apiMetrics, err := newAPIMetrics(mp)
	if err != nil {
		return nil, err
	}

	workflowMetrics, err := newWorkflowMetrics(mp)
	if err != nil {
		return nil, err
	}

	snapshotMetrics, err := newSnapshotMetrics(mp)
	if err != nil {
		return nil, err
	}

	return &Registry{
		API:      apiMetrics,
		Workflow: workflowMetrics,
		Snapshot: snapshotMetrics,
	}, nil
}
