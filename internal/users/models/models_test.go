package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "shoplist/pkg/domain-errors"
)

func TestParseSeed(t *testing.T) {
	users, err := ParseSeed([]string{
		"3b7c1a52-5a7f-4b0e-9a57-0c2d1f3e4a01: Alice ",
		"9d0e3f21-8c1b-4e55-b1a0-77e4b1c2d302:Bob",
	})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "9d0e3f21-8c1b-4e55-b1a0-77e4b1c2d302", users[1].ID.String())

	_, err = ParseSeed([]string{"no-separator"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ParseSeed([]string{"not-a-uuid:Carol"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))

	_, err = ParseSeed([]string{"3b7c1a52-5a7f-4b0e-9a57-0c2d1f3e4a01:  "})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
