package tenant

import (
	"errors"
	"strings"

	"github.com/jovz/residence-hub/internal/domain/room"
)

// Common errors
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrInvalidName    = errors.New("invalid tenant name")
	ErrInvalidRoom    = errors.New("invalid room reference")
	ErrInvalidContact = errors.New("invalid contact number")
)

// Contact digit-count bounds after normalization.
const (
	MinContactDigits = 10
	MaxContactDigits = 15
)

// Tenant represents an occupant. Room is a weak reference to a
// room.RoomNumber: it names the related room without owning it, and it
// dangles if the room is later deleted or renumbered.
type Tenant struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Contact string `json:"contact"`
}

// NormalizeContact strips every non-digit character from a raw contact
// string. "(123) 456-78901" becomes "12345678901".
func NormalizeContact(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidContact reports whether the normalized form of raw has an acceptable
// digit count.
func ValidContact(raw string) bool {
	n := len(NormalizeContact(raw))
	return n >= MinContactDigits && n <= MaxContactDigits
}

// New creates a tenant with validation and normalization applied: the name is
// trimmed, the room reference canonicalized, and the contact reduced to its
// digit string.
func New(name, roomNumber, contact string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	roomNumber = room.CanonicalNumber(roomNumber)
	if !room.ValidNumber(roomNumber) {
		return nil, ErrInvalidRoom
	}

	if !ValidContact(contact) {
		return nil, ErrInvalidContact
	}

	return &Tenant{
		Name:    name,
		Room:    roomNumber,
		Contact: NormalizeContact(contact),
	}, nil
}

// References reports whether the tenant's room reference points at the given
// room number. Both sides are compared in canonical form.
func (t *Tenant) References(roomNumber string) bool {
	return t.Room != "" && room.CanonicalNumber(t.Room) == room.CanonicalNumber(roomNumber)
}
