// Package occupancy keeps the stored room status flag consistent with the
// tenant collection. The flag is denormalized state: every tenant mutation
// that touches a room runs through the synchronizer so the flag converges on
// the truth derivable from the tenant list.
package occupancy

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/pkg/common/logger"
)

// Synchronizer reconciles room occupancy flags against the tenant collection.
type Synchronizer struct {
	rooms   room.Repository
	tenants tenant.Repository
	logger  *logger.Logger
	tracer  trace.Tracer
}

// NewSynchronizer creates a Synchronizer backed by the given repositories.
func NewSynchronizer(rooms room.Repository, tenants tenant.Repository, log *logger.Logger, tracer trace.Tracer) *Synchronizer {
	return &Synchronizer{
		rooms:   rooms,
		tenants: tenants,
		logger:  log,
		tracer:  tracer,
	}
}

// EnsureOccupied marks the room with the given number as occupied unless it
// already is. A room number that matches no registered room is not an error:
// tenants may reference rooms that were deleted or never registered, and the
// reference is kept as-is.
func (s *Synchronizer) EnsureOccupied(ctx context.Context, roomNumber string) error {
	ctx, span := s.tracer.Start(ctx, "occupancy.ensure_occupied",
		trace.WithAttributes(attribute.String("room.number", roomNumber)))
	defer span.End()

	target, err := s.findRoom(ctx, roomNumber)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if target == nil {
		s.logger.Debug(ctx, "occupancy: room not registered, nothing to mark", "room_number", roomNumber)
		return nil
	}
	if target.IsOccupied() {
		return nil
	}

	target.Occupy()
	if _, err := s.rooms.Update(ctx, target.ID, target); err != nil {
		span.RecordError(err)
		return fmt.Errorf("marking room %s occupied: %w", roomNumber, err)
	}

	s.logger.Info(ctx, "occupancy: room marked occupied", "room_number", roomNumber, "room_id", target.ID)
	return nil
}

// ReleaseIfVacated marks the room vacant when no tenant references it
// anymore. The tenant collection is re-listed so the decision reflects the
// current upstream state rather than a cached snapshot.
func (s *Synchronizer) ReleaseIfVacated(ctx context.Context, roomNumber string) error {
	ctx, span := s.tracer.Start(ctx, "occupancy.release_if_vacated",
		trace.WithAttributes(attribute.String("room.number", roomNumber)))
	defer span.End()

	if room.CanonicalNumber(roomNumber) == "" {
		return nil
	}

	tenants, err := s.tenants.List(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("listing tenants for room %s: %w", roomNumber, err)
	}
	for _, t := range tenants {
		if t.References(roomNumber) {
			return nil
		}
	}

	target, err := s.findRoom(ctx, roomNumber)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if target == nil || !target.IsOccupied() {
		return nil
	}

	target.Vacate()
	if _, err := s.rooms.Update(ctx, target.ID, target); err != nil {
		span.RecordError(err)
		return fmt.Errorf("marking room %s vacant: %w", roomNumber, err)
	}

	s.logger.Info(ctx, "occupancy: room released", "room_number", roomNumber, "room_id", target.ID)
	return nil
}

func (s *Synchronizer) findRoom(ctx context.Context, roomNumber string) (*room.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	want := room.CanonicalNumber(roomNumber)
	for i := range rooms {
		if room.CanonicalNumber(rooms[i].RoomNumber) == want {
			return &rooms[i], nil
		}
	}
	return nil, nil
}
