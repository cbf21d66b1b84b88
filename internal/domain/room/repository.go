package room

import "context"

// Repository defines data access for rooms. The backing store is the upstream
// persistence service; implementations translate its failures into upstream
// errors and never paper over them.
type Repository interface {
	// List returns every room the persistence service knows about, in no
	// particular order. Callers that need an order must sort explicitly.
	List(ctx context.Context) ([]Room, error)

	// Create persists a new room and returns the stored record, including the
	// service-assigned ID. Callers should reload List rather than trust the
	// returned record for anything beyond the ID.
	Create(ctx context.Context, r *Room) (*Room, error)

	// Update replaces the room identified by id with the provided fields.
	Update(ctx context.Context, id int64, r *Room) (*Room, error)

	// Delete removes a room. Tenants referencing its number are left dangling;
	// the reference is a relation, not ownership.
	Delete(ctx context.Context, id int64) error
}
