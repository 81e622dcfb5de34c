package roles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	"shoplist/internal/shoppinglist/store"
	id "shoplist/pkg/domain"
	dErrors "shoplist/pkg/domain-errors"
)

type failingFinder struct{}

func (failingFinder) FindMembershipRole(context.Context, id.ListID, id.UserID) (models.Role, error) {
	return models.RoleNone, errors.New("connection reset")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	lists := store.NewInMemory()
	owner, member := id.NewUserID(), id.NewUserID()
	l, err := models.NewList(id.NewListID(), owner, "Groceries", time.Now())
	require.NoError(t, err)
	require.NoError(t, lists.CreateList(ctx, l))
	_, err = lists.AddMembership(ctx, l.ID, member, time.Now())
	require.NoError(t, err)

	r := NewResolver(lists)
	as := func(u id.UserID) identity.Identity { return identity.Identity{UserID: u.String(), Profile: identity.ProfileUser} }

	t.Run("owner and member", func(t *testing.T) {
		res, err := r.Resolve(ctx, l.ID.String(), as(owner))
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, res.Role)
		assert.Equal(t, l.ID, res.ListID)

		res, err = r.Resolve(ctx, l.ID.String(), as(member))
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, res.Role)
	})

	t.Run("stranger and unknown list resolve to none", func(t *testing.T) {
		res, err := r.Resolve(ctx, l.ID.String(), as(id.NewUserID()))
		require.NoError(t, err)
		assert.Equal(t, models.RoleNone, res.Role)

		res, err = r.Resolve(ctx, id.NewListID().String(), as(owner))
		require.NoError(t, err)
		assert.Equal(t, models.RoleNone, res.Role)
	})

	t.Run("malformed ids", func(t *testing.T) {
		_, err := r.Resolve(ctx, "not-an-id", as(owner))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))

		_, err = r.Resolve(ctx, l.ID.String(), identity.Identity{UserID: "user-1", Profile: identity.ProfileUser})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
	})

	t.Run("store failures propagate", func(t *testing.T) {
		_, err := NewResolver(failingFinder{}).Resolve(ctx, l.ID.String(), as(owner))
		require.Error(t, err)
		assert.False(t, dErrors.HasCode(err, dErrors.CodeInvalidID))
	})
}
