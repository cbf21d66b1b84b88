package room

import (
	"errors"
	"regexp"
	"strings"
)

// Common errors
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomOccupied      = errors.New("room already occupied")
	ErrInvalidRoomNumber = errors.New("invalid room number")
	ErrInvalidFloor      = errors.New("invalid floor")
	ErrInvalidRate       = errors.New("invalid rate")
)

// Status is the denormalized occupancy flag stored with a room. It duplicates
// information derivable from tenant references and is only trustworthy until
// the next tenant mutation; callers that need ground truth count tenant
// references instead.
type Status string

const (
	StatusVacant   Status = "Vacant"
	StatusOccupied Status = "Occupied"
)

// Floor bounds for the property.
const (
	MinFloor = 1
	MaxFloor = 3
)

// Room represents a rentable unit. Rooms are created independently of tenants
// and persist across tenant churn; RoomNumber is the join key tenants
// reference, not ID.
type Room struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"roomNumber"`
	Floor      int     `json:"floor"`
	Rate       float64 `json:"rate"`
	Status     Status  `json:"status"`
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// CanonicalNumber normalizes a room number to its canonical string form.
// Both registries store and compare room numbers through this function so
// joins between Tenant.Room and Room.RoomNumber are never
// representation-sensitive (the upstream service has historically stored the
// tenant side as a bare number).
func CanonicalNumber(s string) string {
	return strings.TrimSpace(s)
}

// ValidNumber reports whether s is a well-formed room number: non-empty and
// digits only.
func ValidNumber(s string) bool {
	return digitsOnly.MatchString(CanonicalNumber(s))
}

// New creates a room with validation applied. The room starts vacant;
// occupancy is only ever set by the synchronizer in response to tenant
// mutations.
func New(number string, floor int, rate float64) (*Room, error) {
	number = CanonicalNumber(number)
	if !ValidNumber(number) {
		return nil, ErrInvalidRoomNumber
	}
	if floor < MinFloor || floor > MaxFloor {
		return nil, ErrInvalidFloor
	}
	if rate < 0 {
		return nil, ErrInvalidRate
	}

	return &Room{
		RoomNumber: number,
		Floor:      floor,
		Rate:       rate,
		Status:     StatusVacant,
	}, nil
}

// Occupy marks the room's denormalized flag as occupied.
func (r *Room) Occupy() { r.Status = StatusOccupied }

// Vacate marks the room's denormalized flag as vacant.
func (r *Room) Vacate() { r.Status = StatusVacant }

// IsOccupied reports the stored flag, not the derived occupancy.
func (r *Room) IsOccupied() bool { return r.Status == StatusOccupied }
