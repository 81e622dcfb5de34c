package store

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) createList(owner id.UserID, name string, createdAt time.Time) *models.List {
	l, err := models.NewList(id.NewListID(), owner, name, createdAt)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateList(s.ctx, l))
	return l
}

func (s *InMemoryStoreSuite) newItem(name string) models.Item {
	it, err := models.NewItem(id.NewItemID(), name, 1, s.now)
	s.Require().NoError(err)
	return it
}

func (s *InMemoryStoreSuite) TestLookups() {
	owner, stranger := id.NewUserID(), id.NewUserID()
	l := s.createList(owner, "Groceries", s.now)

	s.Run("member finds the list", func() {
		found, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
		s.Require().NoError(err)
		s.Equal("Groceries", found.Name)
	})

	s.Run("non-member and unknown list are indistinguishable", func() {
		_, errStranger := s.store.FindListForUser(s.ctx, l.ID, stranger, true)
		_, errUnknown := s.store.FindListForUser(s.ctx, id.NewListID(), owner, true)
		s.ErrorIs(errStranger, models.ErrListNotFound)
		s.ErrorIs(errUnknown, models.ErrListNotFound)
		s.Equal(errStranger, errUnknown)
	})

	s.Run("membership role lookup", func() {
		role, err := s.store.FindMembershipRole(s.ctx, l.ID, owner)
		s.Require().NoError(err)
		s.Equal(models.RoleOwner, role)

		_, err = s.store.FindMembershipRole(s.ctx, l.ID, stranger)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindMembershipRole(s.ctx, id.NewListID(), owner)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned aggregates are copies", func() {
		found, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
		s.Require().NoError(err)
		found.Name = "mutated"
		again, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
		s.Require().NoError(err)
		s.Equal("Groceries", again.Name)
	})
}

func (s *InMemoryStoreSuite) TestFindListsForUser() {
	owner, member := id.NewUserID(), id.NewUserID()
	for i := range 5 {
		s.createList(owner, fmt.Sprintf("List %d", i), s.now.Add(time.Duration(i)*time.Minute))
	}
	weekly := s.createList(owner, "Weekly 100% Groceries", s.now.Add(time.Hour))
	_, err := s.store.AddMembership(s.ctx, weekly.ID, member, s.now)
	s.Require().NoError(err)
	archived := s.createList(owner, "Old", s.now)
	_, err = s.store.SetArchived(s.ctx, archived.ID, true, s.now)
	s.Require().NoError(err)

	s.Run("pages newest first", func() {
		total, page, err := s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Page: 1, PageSize: 2})
		s.Require().NoError(err)
		s.Equal(6, total)
		s.Require().Len(page, 2)
		s.Equal(weekly.ID, page[0].ID)
		s.Equal("List 4", page[1].Name)

		total, page, err = s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Page: 4, PageSize: 2})
		s.Require().NoError(err)
		s.Equal(6, total)
		s.Empty(page)
	})

	s.Run("a page far past the end is empty", func() {
		total, page, err := s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Page: math.MaxInt, PageSize: 20})
		s.Require().NoError(err)
		s.Equal(6, total)
		s.Empty(page)
	})

	s.Run("search is a case-insensitive literal substring", func() {
		total, page, err := s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Search: "100% GROC", Page: 1, PageSize: 20})
		s.Require().NoError(err)
		s.Equal(1, total)
		s.Equal(weekly.ID, page[0].ID)

		total, _, err = s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Search: "List .", Page: 1, PageSize: 20})
		s.Require().NoError(err)
		s.Zero(total, "regex metacharacters must match literally")
	})

	s.Run("archived flag selects the other set", func() {
		total, page, err := s.store.FindListsForUser(s.ctx, owner, models.ListQuery{Archived: true, Page: 1, PageSize: 20})
		s.Require().NoError(err)
		s.Equal(1, total)
		s.Equal(archived.ID, page[0].ID)
	})

	s.Run("members see only shared lists", func() {
		total, _, err := s.store.FindListsForUser(s.ctx, member, models.ListQuery{Page: 1, PageSize: 20})
		s.Require().NoError(err)
		s.Equal(1, total)
	})
}

func (s *InMemoryStoreSuite) TestMutations() {
	owner, member := id.NewUserID(), id.NewUserID()
	l := s.createList(owner, "Groceries", s.now)
	later := s.now.Add(time.Minute)

	s.Run("membership rules", func() {
		_, err := s.store.AddMembership(s.ctx, l.ID, member, later)
		s.Require().NoError(err)
		_, err = s.store.AddMembership(s.ctx, l.ID, member, later)
		s.ErrorIs(err, models.ErrMembershipExists)
		_, err = s.store.RemoveMembership(s.ctx, l.ID, owner, later)
		s.ErrorIs(err, models.ErrOwnerMembership)
		_, err = s.store.RemoveMembership(s.ctx, l.ID, id.NewUserID(), later)
		s.ErrorIs(err, models.ErrMembershipMissing)
	})

	s.Run("failed mutation leaves state intact", func() {
		before, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
		s.Require().NoError(err)
		_, err = s.store.Rename(s.ctx, l.ID, "   ", later.Add(time.Hour))
		s.Require().Error(err)
		after, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
		s.Require().NoError(err)
		s.Equal(before, after)
	})

	s.Run("items", func() {
		milk := s.newItem("Milk")
		updated, err := s.store.AddItem(s.ctx, l.ID, milk, later)
		s.Require().NoError(err)
		s.Len(updated.Items, 1)
		s.Equal(later, updated.UpdatedAt)

		resolved := true
		updated, err = s.store.UpdateItem(s.ctx, l.ID, milk.ID, models.ItemPatch{Resolved: &resolved}, later)
		s.Require().NoError(err)
		s.True(updated.Items[0].Resolved)

		hidden, err := s.store.FindListForUser(s.ctx, l.ID, owner, false)
		s.Require().NoError(err)
		s.Empty(hidden.Items)

		_, err = s.store.RemoveItem(s.ctx, l.ID, id.NewItemID(), later)
		s.ErrorIs(err, models.ErrItemNotFound)
		updated, err = s.store.RemoveItem(s.ctx, l.ID, milk.ID, later)
		s.Require().NoError(err)
		s.Empty(updated.Items)
	})

	s.Run("delete removes the aggregate", func() {
		s.Require().NoError(s.store.DeleteList(s.ctx, l.ID))
		s.ErrorIs(s.store.DeleteList(s.ctx, l.ID), models.ErrListNotFound)
		_, err := s.store.AddItem(s.ctx, l.ID, s.newItem("Eggs"), later)
		s.ErrorIs(err, models.ErrListNotFound)
		_, err = s.store.FindMembershipRole(s.ctx, l.ID, member)
		s.ErrorIs(err, models.ErrListNotFound)
	})
}

func (s *InMemoryStoreSuite) TestExecute_CancelledContext() {
	l := s.createList(id.NewUserID(), "Groceries", s.now)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.store.Execute(ctx, l.ID, func(*models.List) error { return nil })
	s.Require().Error(err)
}

// Concurrent item and member additions on one list must all survive.
func (s *InMemoryStoreSuite) TestConcurrentAdditionsAreNotLost() {
	owner := id.NewUserID()
	l := s.createList(owner, "Party", s.now)

	const writers = 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.store.AddItem(s.ctx, l.ID, s.newItemUnchecked(fmt.Sprintf("item-%d", i)), s.now)
			s.NoError(err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.store.AddMembership(s.ctx, l.ID, id.NewUserID(), s.now)
			s.NoError(err)
		}()
	}
	wg.Wait()

	final, err := s.store.FindListForUser(s.ctx, l.ID, owner, true)
	s.Require().NoError(err)
	s.Len(final.Items, writers)
	s.Len(final.Memberships, writers+1)

	owners := 0
	for _, m := range final.Memberships {
		if m.Role == models.RoleOwner {
			owners++
		}
	}
	s.Equal(1, owners)
}

// newItemUnchecked avoids suite assertions inside goroutines.
func (s *InMemoryStoreSuite) newItemUnchecked(name string) models.Item {
	return models.Item{ID: id.NewItemID(), Name: name, Quantity: 1, CreatedAt: s.now, UpdatedAt: s.now}
}
