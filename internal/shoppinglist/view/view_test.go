package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func listWithItems(t *testing.T) (*models.List, id.UserID, id.UserID) {
	t.Helper()
	owner, member := id.NewUserID(), id.NewUserID()
	l, err := models.NewList(id.NewListID(), owner, "Groceries", now)
	require.NoError(t, err)
	require.NoError(t, l.AddMember(member, now))

	for i, name := range []string{"Milk", "Bread", "Eggs"} {
		it, err := models.NewItem(id.NewItemID(), name, i+1, now)
		require.NoError(t, err)
		it.Resolved = name == "Bread"
		l.AddItem(it, now)
	}
	return l, owner, member
}

func TestToOverview(t *testing.T) {
	l, owner, member := listWithItems(t)

	o := ToOverview(l, owner)
	assert.Equal(t, 3, o.ItemsCount)
	assert.Equal(t, 2, o.UnresolvedItemsCount)
	assert.True(t, o.IsOwner)
	assert.False(t, ToOverview(l, member).IsOwner)

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), owner.String(), "overview must not expose member ids")
}

func TestToDetail(t *testing.T) {
	l, owner, member := listWithItems(t)

	t.Run("hides resolved items by default", func(t *testing.T) {
		d := ToDetail(l, false)
		require.Len(t, d.Items, 2)
		assert.Equal(t, 2, d.ItemsCount)
		assert.Equal(t, 2, d.UnresolvedItemsCount)
		for _, it := range d.Items {
			assert.False(t, it.Resolved)
		}
	})

	t.Run("includes resolved items on request", func(t *testing.T) {
		d := ToDetail(l, true)
		require.Len(t, d.Items, 3)
		assert.Equal(t, 3, d.ItemsCount)
		assert.Equal(t, 2, d.UnresolvedItemsCount)
		assert.GreaterOrEqual(t, d.ItemsCount, d.UnresolvedItemsCount)
	})

	t.Run("members keep order and roles", func(t *testing.T) {
		d := ToDetail(l, false)
		assert.Equal(t, []Member{
			{UserID: owner.String(), Role: "owner"},
			{UserID: member.String(), Role: "member"},
		}, d.Members)
		assert.Equal(t, "2026-03-01T09:00:00Z", d.CreatedAt)
	})

	t.Run("empty list projects empty arrays", func(t *testing.T) {
		empty, err := models.NewList(id.NewListID(), owner, "Empty", now)
		require.NoError(t, err)
		raw, err := json.Marshal(ToDetail(empty, false))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"items":[]`)
	})
}

func TestToPage(t *testing.T) {
	l, owner, _ := listWithItems(t)
	p := ToPage(7, models.ListQuery{Page: 2, PageSize: 5}, []*models.List{l}, owner)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PageSize)
	assert.Equal(t, 7, p.Total)
	require.Len(t, p.Lists, 1)
	assert.Equal(t, l.ID.String(), p.Lists[0].ID)
}
