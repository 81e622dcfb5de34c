package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "shoplist/pkg/domain-errors"
)

// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseListID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseListID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseItemID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		parsed, err := ParseUserID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(raw), parsed)
		assert.Equal(t, raw.String(), parsed.String())
	})
}

func TestParseID_RejectsHostileInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"sql injection", "'; DROP TABLE lists;--"},
		{"oversized input", strings.Repeat("a", 1000)},
		{"null byte suffix", "550e8400-e29b-41d4-a716-446655440000\x00x"},
		{"mongo style object id", "65f1c0ffee0ddba11c0ffee0"},
		{"whitespace only", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseListID(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
		})
	}
}

func TestTypedIDs_MarshalAsPlainUUID(t *testing.T) {
	listID := NewListID()
	text, err := listID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, listID.String(), string(text))

	var back ListID
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, listID, back)
	assert.False(t, back.IsNil())
	assert.True(t, ItemID{}.IsNil())
}
