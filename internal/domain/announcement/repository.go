package announcement

import "context"

// Repository defines data access for announcements on the upstream
// persistence service.
type Repository interface {
	List(ctx context.Context) ([]Announcement, error)
	Create(ctx context.Context, a *Announcement) (*Announcement, error)
	Update(ctx context.Context, id int64, a *Announcement) (*Announcement, error)
	Delete(ctx context.Context, id int64) error
}
