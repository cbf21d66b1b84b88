// Package query serves filtered and sorted projections of a snapshot. Like
// the aggregation engine it is pure: a query never mutates the snapshot, and
// running it twice yields identical output.
package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/snapshot"
	"github.com/jovz/residence-hub/internal/domain/tenant"
)

// TenantQuery selects and orders tenants.
type TenantQuery struct {
	Search string
	SortBy string // name, room or contact; empty means name
	Desc   bool
}

// RoomQuery selects and orders rooms.
type RoomQuery struct {
	Search string
	Status string // Occupied or Vacant; empty means both
	SortBy string // roomNumber, floor, rate or status; empty means roomNumber
	Desc   bool
}

// RoomView is a room decorated with its derived occupancy. The stored flag
// is carried along for display, but filtering and the Occupied field come
// from counting tenant references in the snapshot.
type RoomView struct {
	room.Room
	Occupied    bool `json:"occupied"`
	TenantCount int  `json:"tenantCount"`
}

// Tenants returns the tenants matching the query, freshly allocated. The
// search text matches case-insensitively against name, room and contact.
func Tenants(snap snapshot.Snapshot, q TenantQuery) []tenant.Tenant {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := lo.Filter(snap.Tenants, func(t tenant.Tenant, _ int) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Room), needle) ||
			strings.Contains(t.Contact, needle)
	})

	sort.SliceStable(out, func(i, j int) bool {
		if q.Desc {
			return tenantLess(out[j], out[i], q.SortBy)
		}
		return tenantLess(out[i], out[j], q.SortBy)
	})
	return out
}

// Rooms returns the rooms matching the query as views with derived
// occupancy. The status filter compares against the derived occupancy, so a
// room whose stored flag lags behind a tenant write still filters correctly.
func Rooms(snap snapshot.Snapshot, q RoomQuery) []RoomView {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	status := strings.TrimSpace(q.Status)

	views := lo.Map(snap.Rooms, func(r room.Room, _ int) RoomView {
		occupants := snap.TenantsIn(r.RoomNumber)
		return RoomView{
			Room:        r,
			Occupied:    len(occupants) > 0,
			TenantCount: len(occupants),
		}
	})

	out := lo.Filter(views, func(v RoomView, _ int) bool {
		if needle != "" &&
			!strings.Contains(strings.ToLower(v.RoomNumber), needle) &&
			!strings.Contains(strconv.Itoa(v.Floor), needle) {
			return false
		}
		switch status {
		case string(room.StatusOccupied):
			return v.Occupied
		case string(room.StatusVacant):
			return !v.Occupied
		default:
			return true
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		if q.Desc {
			return roomLess(out[j], out[i], q.SortBy)
		}
		return roomLess(out[i], out[j], q.SortBy)
	})
	return out
}

func tenantLess(a, b tenant.Tenant, field string) bool {
	switch field {
	case "room":
		return numberLess(a.Room, b.Room)
	case "contact":
		return a.Contact < b.Contact
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

func roomLess(a, b RoomView, field string) bool {
	switch field {
	case "floor":
		return a.Floor < b.Floor
	case "rate":
		return a.Rate < b.Rate
	case "status":
		// Occupied sorts before vacant.
		return a.Occupied && !b.Occupied
	default:
		return numberLess(a.RoomNumber, b.RoomNumber)
	}
}

// numberLess orders room numbers numerically when both parse, so "9" sorts
// before "101"; otherwise it falls back to case-insensitive lexicographic
// order.
func numberLess(a, b string) bool {
	ai, aerr := strconv.Atoi(room.CanonicalNumber(a))
	bi, berr := strconv.Atoi(room.CanonicalNumber(b))
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
