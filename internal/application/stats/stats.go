// Package stats derives occupancy aggregates from a snapshot. Everything
// here is pure: the same snapshot always produces the same summary, and
// nothing talks to the upstream service.
package stats

import (
	"github.com/samber/lo"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/snapshot"
)

// DefaultCapacity is assumed when the room registry is empty, matching the
// size of the property before rooms were tracked as records.
const DefaultCapacity = 24

// Summary is the aggregate view rendered on the dashboard.
type Summary struct {
	TotalTenants  int            `json:"totalTenants"`
	TotalRooms    int            `json:"totalRooms"`
	OccupiedRooms int            `json:"occupiedRooms"`
	VacantRooms   int            `json:"vacantRooms"`
	PerRoom       map[string]int `json:"roomDistribution"`
	MaxPerRoom    int            `json:"maxPerRoom"`
	StaleRefs     int            `json:"staleRefs"`

	// CapacityAssumed marks TotalRooms as the assumed default rather than a
	// real registry count, so consumers can tell the fallback from data.
	CapacityAssumed bool `json:"capacityAssumed"`
}

// Compute derives the occupancy summary from a snapshot. Occupancy is
// counted from tenant references, never from the stored status flag.
//
// A tenant whose room reference matches no registered room is a stale
// reference: it counts toward the tenant total and the stale count but is
// excluded from the distribution, so the dashboard never shows occupancy for
// rooms that do not exist. When no rooms are registered at all, every
// reference is taken at face value against the assumed capacity instead.
func Compute(snap snapshot.Snapshot) Summary {
	registered := snap.RoomNumbers()
	hasRegistry := len(registered) > 0

	perRoom := make(map[string]int)
	staleRefs := 0
	for _, t := range snap.Tenants {
		number := room.CanonicalNumber(t.Room)
		if number == "" {
			continue
		}
		if hasRegistry {
			if _, ok := registered[number]; !ok {
				staleRefs++
				continue
			}
		}
		perRoom[number]++
	}

	totalRooms := len(snap.Rooms)
	capacityAssumed := totalRooms == 0
	if capacityAssumed {
		totalRooms = DefaultCapacity
	}

	occupied := len(perRoom)
	vacant := totalRooms - occupied
	if vacant < 0 {
		vacant = 0
	}

	// The densest room drives the distribution chart's scale; flooring at 1
	// keeps the axis sane when the property is empty.
	maxPerRoom := lo.Max(lo.Values(perRoom))
	if maxPerRoom < 1 {
		maxPerRoom = 1
	}

	return Summary{
		TotalTenants:    len(snap.Tenants),
		TotalRooms:      totalRooms,
		OccupiedRooms:   occupied,
		VacantRooms:     vacant,
		PerRoom:         perRoom,
		MaxPerRoom:      maxPerRoom,
		StaleRefs:       staleRefs,
		CapacityAssumed: capacityAssumed,
	}
}
