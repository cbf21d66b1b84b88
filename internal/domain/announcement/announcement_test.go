package announcement

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrimsTitle(t *testing.T) {
	now := time.Now()

	a, err := New("  Water maintenance  ", "Tank cleaning on Sunday.", now)

	require.NoError(t, err)
	assert.Equal(t, "Water maintenance", a.Title)
	assert.Equal(t, now, a.PostedAt)
}

func TestNewRejectsBlankTitle(t *testing.T) {
	_, err := New("   ", "body", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestNewTruncatesOversizedBody(t *testing.T) {
	a, err := New("Notice", strings.Repeat("x", MaxBodyLength+50), time.Now())

	require.NoError(t, err)
	assert.Len(t, a.Body, MaxBodyLength)
}

func TestNewTruncatesOnRuneBoundary(t *testing.T) {
	// "água" places a two-byte rune across the cut point.
	body := strings.Repeat("x", MaxBodyLength-1) + "água"

	a, err := New("Notice", body, time.Now())

	require.NoError(t, err)
	assert.True(t, utf8.ValidString(a.Body))
	assert.LessOrEqual(t, len(a.Body), MaxBodyLength)
	assert.Equal(t, strings.Repeat("x", MaxBodyLength-1), a.Body)
}
