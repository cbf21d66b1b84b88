package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		Room FlexString `json:"room"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"room": "104"}`), &payload))
	assert.Equal(t, "104", payload.Room.String())

	require.NoError(t, json.Unmarshal([]byte(`{"room": 205}`), &payload))
	assert.Equal(t, "205", payload.Room.String())

	require.NoError(t, json.Unmarshal([]byte(`{"room": null}`), &payload))
	assert.Equal(t, "", payload.Room.String())
}

func TestFlexStringMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(FlexString("104"))
	require.NoError(t, err)
	assert.Equal(t, `"104"`, string(out))
}

func TestErrorMessages(t *testing.T) {
	statusErr := NewError("GET", "/tenants", 503, nil)
	assert.Contains(t, statusErr.Error(), "status 503")

	wrapped := NewError("GET", "/tenants", 0, assert.AnError)
	assert.ErrorIs(t, wrapped, assert.AnError)
}
