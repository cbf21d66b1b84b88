package announcement

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Common errors
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidTitle         = errors.New("invalid announcement title")
)

// MaxBodyLength mirrors the column limit the persistence service enforces.
const MaxBodyLength = 2000

// Announcement is a property-wide notice shown to residents.
type Announcement struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"postedAt"`
}

// New creates an announcement with the posted-at timestamp set by the caller
// so tests can control time.
func New(title, body string, postedAt time.Time) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	body = truncate(body, MaxBodyLength)

	return &Announcement{
		Title:    title,
		Body:     body,
		PostedAt: postedAt,
	}, nil
}

// truncate caps s at max bytes without splitting a rune, so a cut body is
// still valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
