// Package snapshot defines the owned, immutable view of both registries that
// the aggregation engine and query view compute from. A snapshot is rebuilt
// wholesale after every successful write; nothing patches it incrementally.
package snapshot

import (
	"time"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
)

// Snapshot is a point-in-time copy of the tenant and room collections.
// Consumers treat it as read-only; deriving a filtered or sorted view must
// allocate fresh slices.
type Snapshot struct {
	Tenants  []tenant.Tenant
	Rooms    []room.Room
	LoadedAt time.Time
}

// RoomNumbers returns the set of canonical room numbers present in the room
// registry.
func (s Snapshot) RoomNumbers() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Rooms))
	for _, r := range s.Rooms {
		set[room.CanonicalNumber(r.RoomNumber)] = struct{}{}
	}
	return set
}

// Occupied derives a room's occupancy live from the tenant list. This is the
// authoritative answer; the stored room flag can lag behind it between a
// tenant write and the synchronizer's follow-up.
func (s Snapshot) Occupied(roomNumber string) bool {
	for i := range s.Tenants {
		if s.Tenants[i].References(roomNumber) {
			return true
		}
	}
	return false
}

// TenantsIn returns the tenants whose reference joins to the given room
// number.
func (s Snapshot) TenantsIn(roomNumber string) []tenant.Tenant {
	var out []tenant.Tenant
	for _, t := range s.Tenants {
		if t.References(roomNumber) {
			out = append(out, t)
		}
	}
	return out
}

// FindRoomByNumber returns the room with the given canonical number, or nil.
// Room numbers are unique among rooms, so the first match is the only match.
func (s Snapshot) FindRoomByNumber(roomNumber string) *room.Room {
	want := room.CanonicalNumber(roomNumber)
	for i := range s.Rooms {
		if room.CanonicalNumber(s.Rooms[i].RoomNumber) == want {
			return &s.Rooms[i]
		}
	}
	return nil
}
