package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "shoplist/pkg/domain-errors"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=1,max=10"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Page     int    `query:"page" validate:"min=1"`
}

func violations(t *testing.T, err error) []Violation {
	t.Helper()
	de, ok := dErrors.From(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeValidation, de.Code)
	vs, ok := de.Details.([]Violation)
	require.True(t, ok)
	return vs
}

func TestStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, Struct(&sample{Name: "milk", Page: 1}))
	})

	t.Run("reports every violation by wire name", func(t *testing.T) {
		zero := 0
		err := Struct(&sample{Name: strings.Repeat("x", 11), Quantity: &zero, Page: 0})
		vs := violations(t, err)
		require.Len(t, vs, 3)

		byField := map[string]Violation{}
		for _, v := range vs {
			byField[v.Field] = v
		}
		assert.Equal(t, "max", byField["name"].Rule)
		assert.Equal(t, "name must be at most 10 characters", byField["name"].Message)
		assert.Equal(t, "min", byField["quantity"].Rule)
		assert.Equal(t, "min", byField["page"].Rule)
	})

	t.Run("extra violations are appended", func(t *testing.T) {
		err := Struct(&sample{Name: "milk", Page: 1}, AtLeastOne("name", "archived"))
		vs := violations(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "atLeastOne", vs[0].Rule)
	})
}
