package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesFields(t *testing.T) {
	tn, err := New("  Ana Silva  ", " 104 ", "(987) 654-3210")

	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", tn.Name)
	assert.Equal(t, "104", tn.Room)
	assert.Equal(t, "9876543210", tn.Contact)
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		tenant  string
		room    string
		contact string
		wantErr error
	}{
		{"blank name", "   ", "104", "9876543210", ErrInvalidName},
		{"empty room", "Ana", "", "9876543210", ErrInvalidRoom},
		{"alphanumeric room", "Ana", "B12", "9876543210", ErrInvalidRoom},
		{"too few digits", "Ana", "104", "12345", ErrInvalidContact},
		{"too many digits", "Ana", "104", "1234567890123456", ErrInvalidContact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tenant, tt.room, tt.contact)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeContact(t *testing.T) {
	assert.Equal(t, "12345678901", NormalizeContact("(123) 456-78901"))
	assert.Equal(t, "9876543210", NormalizeContact("+98 765 432 10"))
	assert.Equal(t, "", NormalizeContact("abc"))
}

func TestValidContact(t *testing.T) {
	// 11 digits after stripping punctuation.
	assert.True(t, ValidContact("(123) 456-78901"))
	// Bounds inclusive.
	assert.True(t, ValidContact("1234567890"))
	assert.True(t, ValidContact("123456789012345"))
	assert.False(t, ValidContact("12345"))
	assert.False(t, ValidContact("1234567890123456"))
}

func TestReferences(t *testing.T) {
	tn := Tenant{Name: "Ana", Room: "104"}

	assert.True(t, tn.References("104"))
	assert.True(t, tn.References(" 104 "))
	assert.False(t, tn.References("105"))

	empty := Tenant{Name: "Ana"}
	assert.False(t, empty.References(""))
	assert.False(t, empty.References("104"))
}
