// Package workflow runs a user-initiated sequence of dependent persistence
// calls as named, strictly sequential steps. A workflow is a logical unit for
// error reporting only: it is not a transaction. The first failing step
// aborts the remainder, already-committed steps are never reverted, and
// nothing retries automatically; the caller surfaces the failure and may
// re-run the whole workflow.
package workflow

import (
	"context"
	"fmt"
	"time"
)

// Step represents a single executable unit in a workflow.
type Step struct {
	Name        string
	Description string
	Execute     func(ctx context.Context) error
}

// Result contains the consolidated outcome of a workflow execution.
type Result struct {
	Success     bool
	CompletedAt time.Time
	Error       error
	StepResults []StepResult
}

// StepResult tracks the execution result of an individual workflow step.
type StepResult struct {
	StepName    string
	Success     bool
	Error       error
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// FailedStep returns the name of the step that aborted the workflow, or an
// empty string on success.
func (r Result) FailedStep() string {
	for _, sr := range r.StepResults {
		if !sr.Success {
			return sr.StepName
		}
	}
	return ""
}

// Run executes the steps in order and returns a consolidated result. Steps
// within one workflow never interleave with each other; the serialization of
// concurrent workflows from different sessions is deliberately not provided
// (last write wins).
func Run(ctx context.Context, steps []Step) Result {
	result := Result{
		Success:     true,
		StepResults: make([]StepResult, 0, len(steps)),
	}

	for _, step := range steps {
		stepResult := StepResult{
			StepName:  step.Name,
			StartedAt: time.Now(),
		}

		err := step.Execute(ctx)

		stepResult.CompletedAt = time.Now()
		stepResult.Duration = stepResult.CompletedAt.Sub(stepResult.StartedAt)

		if err != nil {
			stepResult.Success = false
			stepResult.Error = err
			result.Success = false
			result.Error = fmt.Errorf("step %s failed: %w", step.Name, err)
			result.StepResults = append(result.StepResults, stepResult)
			break
		}

		stepResult.Success = true
		result.StepResults = append(result.StepResults, stepResult)
	}

	result.CompletedAt = time.Now()

	return result
}

// StepError reports which step of which operation aborted a workflow. The
// wrapped error is the step's own failure, so sentinel checks with errors.Is
// see through it.
type StepError struct {
	Operation string
	Step      string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Operation, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ErrorFrom converts a failed result into a *StepError carrying the failing
// step's underlying error. It returns nil for successful results.
func ErrorFrom(operation string, r Result) error {
	if r.Success {
		return nil
	}
	for _, sr := range r.StepResults {
		if !sr.Success {
			return &StepError{Operation: operation, Step: sr.StepName, Err: sr.Error}
		}
	}
	return &StepError{Operation: operation, Step: "unknown", Err: r.Error}
}

// Metrics is implemented by the metrics registry to observe workflow
// outcomes.
type Metrics interface {
	IncWorkflowSuccess(ctx context.Context, operation string)
	IncWorkflowFailure(ctx context.Context, operation, step string)
	ObserveWorkflowDuration(ctx context.Context, operation string, seconds float64)
}

// NoopMetrics satisfies Metrics for tests and wiring without telemetry.
type NoopMetrics struct{}

func (NoopMetrics) IncWorkflowSuccess(context.Context, string)            {}
func (NoopMetrics) IncWorkflowFailure(context.Context, string, string)    {}
func (NoopMetrics) ObserveWorkflowDuration(context.Context, string, float64) {}

// Observe reports a finished workflow to the metrics sink.
func Observe(ctx context.Context, m Metrics, operation string, result Result) {
	if m == nil {
		return
	}
	var total time.Duration
	for _, sr := range result.StepResults {
		total += sr.Duration
	}
	m.ObserveWorkflowDuration(ctx, operation, total.Seconds())
	if result.Success {
		m.IncWorkflowSuccess(ctx, operation)
		return
	}
	m.IncWorkflowFailure(ctx, operation, result.FailedStep())
}
