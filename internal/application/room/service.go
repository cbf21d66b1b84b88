// Package room orchestrates room registry operations, including the direct
// assign and vacate actions that manipulate occupancy from the room side.
package room

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/application/occupancy"
	"github.com/jovz/residence-hub/internal/application/refresh"
	"github.com/jovz/residence-hub/internal/application/workflow"
	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/pkg/common/logger"
)

// Service coordinates room operations against the upstream persistence
// service.
type Service struct {
	rooms   room.Repository
	tenants tenant.Repository
	sync    *occupancy.Synchronizer
	store   *refresh.Store
	checker *validation.Checker
	logger  *logger.Logger
	tracer  trace.Tracer
	metrics workflow.Metrics
}

// NewService creates a room Service with all dependencies wired.
func NewService(
	rooms room.Repository,
	tenants tenant.Repository,
	sync *occupancy.Synchronizer,
	store *refresh.Store,
	checker *validation.Checker,
	log *logger.Logger,
	tracer trace.Tracer,
	metrics workflow.Metrics,
) *Service {
	return &Service{
		rooms:   rooms,
		tenants: tenants,
		sync:    sync,
		store:   store,
		checker: checker,
		logger:  log,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Create validates the input, registers the room and reloads the snapshot.
// New rooms always start vacant regardless of any status in the input.
func (s *Service) Create(ctx context.Context, in validation.RoomInput) (*room.Room, validation.FieldErrors, error) {
	ctx, span := s.tracer.Start(ctx, "room.create",
		trace.WithAttributes(attribute.String("room.number", in.RoomNumber)))
	defer span.End()

	newRoom, fieldErrs := s.checker.Room(in)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	var created *room.Room
	steps := []workflow.Step{
		{
			Name:        "persist-room",
			Description: "create the room record upstream",
			Execute: func(ctx context.Context) error {
				var err error
				created, err = s.rooms.Create(ctx, newRoom)
				return err
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "room.create", result)
	if err := workflow.ErrorFrom("room.create", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "room create workflow failed", "step", result.FailedStep(), "err", err)
		return nil, nil, err
	}

	s.logger.Info(ctx, "room registered", "room_id", created.ID, "room_number", created.RoomNumber)
	return created, nil, nil
}

// Update validates the input and rewrites the room record. The stored
// occupancy flag is carried over from the existing record; updates change a
// room's attributes, not who lives in it.
func (s *Service) Update(ctx context.Context, id int64, in validation.RoomInput) (*room.Room, validation.FieldErrors, error) {
	ctx, span := s.tracer.Start(ctx, "room.update",
		trace.WithAttributes(attribute.Int64("room.id", id)))
	defer span.End()

	updated, fieldErrs := s.checker.Room(in)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	var persisted *room.Room
	steps := []workflow.Step{
		{
			Name:        "load-room",
			Description: "fetch the current record to carry its status over",
			Execute: func(ctx context.Context) error {
				current, err := s.findByID(ctx, id)
				if err != nil {
					return err
				}
				updated.Status = current.Status
				return nil
			},
		},
		{
			Name:        "persist-room",
			Description: "write the updated record upstream",
			Execute: func(ctx context.Context) error {
				var err error
				persisted, err = s.rooms.Update(ctx, id, updated)
				return err
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "room.update", result)
	if err := workflow.ErrorFrom("room.update", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "room update workflow failed", "room_id", id, "step", result.FailedStep(), "err", err)
		return nil, nil, err
	}

	s.logger.Info(ctx, "room updated", "room_id", id, "room_number", persisted.RoomNumber)
	return persisted, nil, nil
}

// Delete removes the room record and reloads the snapshot. Tenants that
// still reference the room are left untouched; their references become stale
// and show up in the aggregation's stale count.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "room.delete",
		trace.WithAttributes(attribute.Int64("room.id", id)))
	defer span.End()

	steps := []workflow.Step{
		{
			Name:        "delete-room",
			Description: "delete the room record upstream",
			Execute: func(ctx context.Context) error {
				return s.rooms.Delete(ctx, id)
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "room.delete", result)
	if err := workflow.ErrorFrom("room.delete", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "room delete workflow failed", "room_id", id, "step", result.FailedStep(), "err", err)
		return err
	}

	s.logger.Info(ctx, "room deleted", "room_id", id)
	return nil
}

// Assign moves the given tenant into the room. It refuses rooms whose stored
// flag already reads occupied, marks the room occupied, repoints the tenant's
// room reference and releases the tenant's previous room if that left it
// empty.
func (s *Service) Assign(ctx context.Context, roomID, tenantID int64) error {
	ctx, span := s.tracer.Start(ctx, "room.assign",
		trace.WithAttributes(
			attribute.Int64("room.id", roomID),
			attribute.Int64("tenant.id", tenantID),
		))
	defer span.End()

	var (
		target       *room.Room
		occupant     *tenant.Tenant
		previousRoom string
	)
	steps := []workflow.Step{
		{
			Name:        "load-room",
			Description: "fetch the room and check it is free",
			Execute: func(ctx context.Context) error {
				current, err := s.findByID(ctx, roomID)
				if err != nil {
					return err
				}
				if current.IsOccupied() {
					return room.ErrRoomOccupied
				}
				target = current
				return nil
			},
		},
		{
			Name:        "load-tenant",
			Description: "fetch the tenant and remember its previous room",
			Execute: func(ctx context.Context) error {
				current, err := s.findTenantByID(ctx, tenantID)
				if err != nil {
					return err
				}
				occupant = current
				previousRoom = current.Room
				return nil
			},
		},
		{
			Name:        "mark-room-occupied",
			Description: "flip the room's status flag",
			Execute: func(ctx context.Context) error {
				return s.sync.EnsureOccupied(ctx, target.RoomNumber)
			},
		},
		{
			Name:        "repoint-tenant",
			Description: "write the tenant record with the new room reference",
			Execute: func(ctx context.Context) error {
				occupant.Room = target.RoomNumber
				_, err := s.tenants.Update(ctx, tenantID, occupant)
				return err
			},
		},
		{
			Name:        "release-previous-room",
			Description: "vacate the old room if nobody references it anymore",
			Execute: func(ctx context.Context) error {
				if previousRoom == "" || room.CanonicalNumber(previousRoom) == room.CanonicalNumber(target.RoomNumber) {
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
	workflow.Observe(ctx, s.metrics, "room.assign", result)
	if err := workflow.ErrorFrom("room.assign", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "room assign workflow failed",
			"room_id", roomID, "tenant_id", tenantID, "step", result.FailedStep(), "err", err)
		return err
	}

	s.logger.Info(ctx, "tenant assigned to room",
		"room_id", roomID, "tenant_id", tenantID, "previous_room", previousRoom)
	return nil
}

// Vacate empties the room. The stored flag is forced to vacant and every
// tenant still referencing the room has its reference cleared, so the
// occupants end up unassigned rather than pointing at a vacant room.
func (s *Service) Vacate(ctx context.Context, roomID int64) error {
	ctx, span := s.tracer.Start(ctx, "room.vacate",
		trace.WithAttributes(attribute.Int64("room.id", roomID)))
	defer span.End()

	var target *room.Room
	steps := []workflow.Step{
		{
			Name:        "mark-room-vacant",
			Description: "force the room's status flag to vacant",
			Execute: func(ctx context.Context) error {
				current, err := s.findByID(ctx, roomID)
				if err != nil {
					return err
				}
				target = current
				if !current.IsOccupied() {
					return nil
				}
				current.Vacate()
				_, err = s.rooms.Update(ctx, roomID, current)
				return err
			},
		},
		{
			Name:        "clear-tenant-references",
			Description: "unassign every tenant still referencing the room",
			Execute: func(ctx context.Context) error {
				tenants, err := s.tenants.List(ctx)
				if err != nil {
					return fmt.Errorf("listing tenants: %w", err)
				}
				for i := range tenants {
					if !tenants[i].References(target.RoomNumber) {
						continue
					}
					tenants[i].Room = ""
					if _, err := s.tenants.Update(ctx, tenants[i].ID, &tenants[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name:        "reload-snapshot",
			Description: "refresh the in-memory view of both collections",
			Execute:     s.store.Reload,
		},
	}

	result := workflow.Run(ctx, steps)
	workflow.Observe(ctx, s.metrics, "room.vacate", result)
	if err := workflow.ErrorFrom("room.vacate", result); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, "room vacate workflow failed", "room_id", roomID, "step", result.FailedStep(), "err", err)
		return err
	}

	s.logger.Info(ctx, "room vacated", "room_id", roomID)
	return nil
}

func (s *Service) findByID(ctx context.Context, id int64) (*room.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i], nil
		}
	}
	return nil, room.ErrRoomNotFound
}

func (s *Service) findTenantByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	tenants, err := s.tenants.List(ctx)
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
