// Package tenant orchestrates tenant lifecycle workflows: each mutation is a
// sequence of dependent upstream writes followed by a snapshot reload.
package tenant

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/application/occupancy"
	"github.com/jovz/residence-hub/internal/application/refresh"
	"github.com/jovz/residence-hub/internal/application/workflow"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/pkg/common/logger"
)

// Service coordinates tenant operations against the upstream persistence
// service and keeps room occupancy and the local snapshot in step.
type Service struct {
	repo    tenant.Repository
	sync    *occupancy.Synchronizer
	store   *refresh.Store
	checker *validation.Checker
	logger  *logger.Logger
	tracer  trace.Tracer
	metrics workflow.Metrics
}

// NewService creates a tenant Service with all dependencies wired.
func NewService(
	repo tenant.Repository,
	sync *occupancy.Synchronizer,
	store *refresh.Store,
	checker *validation.Checker,
	log *logger.Logger,
	tracer trace.Tracer,
	metrics workflow.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		sync:    sync,
		store:   store,
		checker: checker,
		logger:  log,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Create validates the input and, if it passes, persists the tenant, marks
// the referenced room occupied and reloads the snapshot. Validation failures
// are reported as field errors, not as an error; the workflow never starts.
func (s *Service) Create(ctx context.Context, in validation.TenantInput) (*tenant.Tenant, validation.FieldErrors, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.create",
		trace.WithAttributes(attribute.String("tenant.name", in.Name)))
	defer span.End()

	newTenant, fieldErrs := s.checker.Tenant(in)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	var created *tenant.Tenant
	steps := []workflow.Step{
		{
			Name:        "persist-tenant",
			Description: "create the tenant record upstream",
			Execute: func(ctx context.Context) error {
				var err error
				created, err = s.repo.Create(ctx, newTenant)
				return err
			},
		},
		{
			Name:        "mark-room-occupied",
			Description: "flip the referenced room's status flag",
			Execute: func(ctx context.Context) error {
				return s.sync.EnsureOccupied(ctx, created.Room)
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "tenant.create", result)
	if err := workflow.ErrorFrom("tenant.create", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "tenant create workflow failed", "step", result.FailedStep(), "err", err)
		return nil, nil, err
	}

	s.logger.Info(ctx, "tenant created", "tenant_id", created.ID, "room", created.Room)
	return created, nil, nil
}

// Update validates the input, writes the updated record, reconciles
// occupancy for both the new room and, when the tenant moved, the previous
// one, then reloads the snapshot.
func (s *Service) Update(ctx context.Context, id int64, in validation.TenantInput) (*tenant.Tenant, validation.FieldErrors, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.update",
		trace.WithAttributes(attribute.Int64("tenant.id", id)))
	defer span.End()

	updated, fieldErrs := s.checker.Tenant(in)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	var (
		previousRoom string
		persisted    *tenant.Tenant
	)
	steps := []workflow.Step{
		{
			Name:        "load-tenant",
			Description: "fetch the current record to learn its room",
			Execute: func(ctx context.Context) error {
				current, err := s.findByID(ctx, id)
				if err != nil {
					return err
				}
				previousRoom = current.Room
				return nil
			},
		},
		{
			Name:        "persist-tenant",
			Description: "write the updated record upstream",
			Execute: func(ctx context.Context) error {
				var err error
				persisted, err = s.repo.Update(ctx, id, updated)
				return err
			},
		},
		{
			Name:        "mark-room-occupied",
			Description: "flip the new room's status flag",
			Execute: func(ctx context.Context) error {
				return s.sync.EnsureOccupied(ctx, persisted.Room)
			},
		},
		{
			Name:        "release-previous-room",
			Description: "vacate the old room if nobody references it anymore",
			Execute: func(ctx context.Context) error {
				if previousRoom == "" || persisted.References(previousRoom) {
					return nil
				}
				return s.sync.ReleaseIfVacated(ctx, previousRoom)
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "tenant.update", result)
	if err := workflow.ErrorFrom("tenant.update", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "tenant update workflow failed", "tenant_id", id, "step", result.FailedStep(), "err", err)
		return nil, nil, err
	}

	s.logger.Info(ctx, "tenant updated", "tenant_id", id, "room", persisted.Room)
	return persisted, nil, nil
}

// Delete removes the tenant, releases its room if it was the last occupant
// and reloads the snapshot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "tenant.delete",
		trace.WithAttributes(attribute.Int64("tenant.id", id)))
	defer span.End()

	var previousRoom string
	steps := []workflow.Step{
		{
			Name:        "load-tenant",
			Description: "fetch the record to learn its room",
			Execute: func(ctx context.Context) error {
				current, err := s.findByID(ctx, id)
				if err != nil {
					return err
				}
				previousRoom = current.Room
				return nil
			},
		},
		{
			Name:        "delete-tenant",
			Description: "delete the tenant record upstream",
			Execute: func(ctx context.Context) error {
				return s.repo.Delete(ctx, id)
			},
		},
		{
			Name:        "release-room",
			Description: "vacate the room if nobody references it anymore",
			Execute: func(ctx context.Context) error {
				return s.sync.ReleaseIfVacated(ctx, previousRoom)
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "tenant.delete", result)
	if err := workflow.ErrorFrom("tenant.delete", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "tenant delete workflow failed", "tenant_id", id, "step", result.FailedStep(), "err", err)
		return err
	}

	s.logger.Info(ctx, "tenant deleted", "tenant_id", id, "previous_room", previousRoom)
	return nil
}

// findByID lists the collection and picks the record by ID. The upstream API
// has no single-record read, so this is the lookup primitive.
func (s *Service) findByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	tenants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	for i := range tenants {
		if tenants[i].ID == id {
			return &tenants[i], nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}
