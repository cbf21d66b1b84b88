package tenant

import "context"

// Repository defines data access for tenants, backed by the upstream
// persistence service. The Room field travels and compares in its canonical
// string form at every boundary; implementations normalize on decode.
type Repository interface {
	// List returns every tenant, in no particular order.
	List(ctx context.Context) ([]Tenant, error)

	// Create persists a new tenant and returns the stored record with its
	// service-assigned ID.
	Create(ctx context.Context, t *Tenant) (*Tenant, error)

	// Update replaces the tenant identified by id with the provided fields.
	Update(ctx context.Context, id int64, t *Tenant) (*Tenant, error)

	// Delete removes a tenant. The referenced room's occupancy is not touched
	// here; that follow-up belongs to the synchronizer.
	Delete(ctx context.Context, id int64) error
}
