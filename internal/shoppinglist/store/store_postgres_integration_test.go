//go:build integration

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
	"shoplist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Postgres
	ctx      context.Context
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(Migrate(s.ctx, s.postgres.Pool))
	s.store = NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx, "shopping_lists"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) createList(owner id.UserID, name string, createdAt time.Time) *models.List {
	l, err := models.NewList(id.NewListID(), owner, name, createdAt)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateList(s.ctx, l))
	return l
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	owner, member, stranger := id.NewUserID(), id.NewUserID(), id.NewUserID()
	l := s.createList(owner, "Groceries", s.now)

	updated, err := s.store.AddMembership(s.ctx, l.ID, member, s.now)
	s.Require().NoError(err)
	s.Equal(models.RoleMember, updated.RoleOf(member))

	milk, err := models.NewItem(id.NewItemID(), "Milk", 0, s.now)
	s.Require().NoError(err)
	updated, err = s.store.AddItem(s.ctx, l.ID, milk, s.now)
	s.Require().NoError(err)
	s.Require().Len(updated.Items, 1)
	s.Equal(1, updated.Items[0].Quantity)
	s.False(updated.Items[0].Resolved)

	resolved := true
	_, err = s.store.UpdateItem(s.ctx, l.ID, milk.ID, models.ItemPatch{Resolved: &resolved}, s.now)
	s.Require().NoError(err)

	visible, err := s.store.FindListForUser(s.ctx, l.ID, member, false)
	s.Require().NoError(err)
	s.Empty(visible.Items)
	all, err := s.store.FindListForUser(s.ctx, l.ID, member, true)
	s.Require().NoError(err)
	s.Len(all.Items, 1)

	_, err = s.store.FindListForUser(s.ctx, l.ID, stranger, true)
	s.ErrorIs(err, models.ErrListNotFound)

	role, err := s.store.FindMembershipRole(s.ctx, l.ID, owner)
	s.Require().NoError(err)
	s.Equal(models.RoleOwner, role)
	_, err = s.store.FindMembershipRole(s.ctx, l.ID, stranger)
	s.ErrorIs(err, models.ErrMembershipMissing)
}

func (s *PostgresStoreSuite) TestMembershipErrors() {
	owner, member := id.NewUserID(), id.NewUserID()
	l := s.createList(owner, "Groceries", s.now)

	_, err := s.store.AddMembership(s.ctx, l.ID, member, s.now)
	s.Require().NoError(err)
	_, err = s.store.AddMembership(s.ctx, l.ID, member, s.now)
	s.ErrorIs(err, models.ErrMembershipExists)
	_, err = s.store.RemoveMembership(s.ctx, l.ID, owner, s.now)
	s.ErrorIs(err, models.ErrOwnerMembership)
	_, err = s.store.RemoveMembership(s.ctx, l.ID, id.NewUserID(), s.now)
	s.ErrorIs(err, models.ErrMembershipMissing)
	_, err = s.store.AddMembership(s.ctx, id.NewListID(), member, s.now)
	s.ErrorIs(err, models.ErrListNotFound)
}

func (s *PostgresStoreSuite) TestArchiveIsIdempotent() {
	l := s.createList(id.NewUserID(), "Groceries", s.now)
	first, err := s.store.SetArchived(s.ctx, l.ID, true, s.now.Add(time.Minute))
	s.Require().NoError(err)
	second, err := s.store.SetArchived(s.ctx, l.ID, true, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.True(second.Archived)
	s.True(first.UpdatedAt.Equal(second.UpdatedAt))
}

func (s *PostgresStoreSuite) TestDeleteCascades() {
	owner := id.NewUserID()
	l := s.createList(owner, "Groceries", s.now)
	it, err := models.NewItem(id.NewItemID(), "Milk", 2, s.now)
	s.Require().NoError(err)
	_, err = s.store.AddItem(s.ctx, l.ID, it, s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteList(s.ctx, l.ID))
	s.ErrorIs(s.store.DeleteList(s.ctx, l.ID), models.ErrListNotFound)

	var orphans int
	s.Require().NoError(s.postgres.Pool.QueryRow(s.ctx,
		`SELECT (SELECT count(*) FROM list_items) + (SELECT count(*) FROM list_memberships)`).Scan(&orphans))
	s.Zero(orphans)
}

func (s *PostgresStoreSuite) TestOverviewPagingAndSearch() {
	owner := id.NewUserID()
	for i := range 5 {
		s.createList(owner, fmt.Sprintf("List %d", i), s.now.Add(time.Duration(i)*time.Minute))
	}
	s.createList(owner, "under_score", s.now.Add(-time.Hour))

	total, page, err := s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Page: 1, PageSize: 2})
	s.Require().NoError(err)
	s.Equal(6, total)
	s.Require().Len(page, 2)
	s.Equal("List 4", page[0].Name)
	s.Equal("List 3", page[1].Name)

	total, page, err = s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Search: "_", Page: 1, PageSize: 20})
	s.Require().NoError(err)
	s.Equal(1, total, "LIKE wildcards must match literally")
	s.Equal("under_score", page[0].Name)
}

func (s *PostgresStoreSuite) TestConcurrentItemAdds() {
	owner := id.NewUserID()
	l := s.createList(owner, "Party", s.now)

	const writers = 20
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it := models.Item{ID: id.NewItemID(), Name: fmt.Sprintf("item-%d", i), Quantity: 1, CreatedAt: s.now, UpdatedAt: s.now}
			_, err := s.store.AddItem(s.ctx, l.ID, it, s.now)
			s.NoError(err)
		}()
	}
	wg.Wait()

	final, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
	s.Require().NoError(err)
	s.Len(final.Items, writers)
}
