package store

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
	dErrors "shoplist/pkg/domain-errors"
)

// numListShards is the number of per-list mutation locks; lists hash onto them by id.
const numListShards = 128

// InMemory keeps list aggregates in a map. Mutations on the same list are
// serialized by a sharded lock held across read-modify-write; the aggregate is
// cloned before fn runs so a failed mutation leaves the stored copy intact.
type InMemory struct {
	shards [numListShards]sync.Mutex

	mu    sync.RWMutex
	lists map[id.ListID]*models.List
}

func NewInMemory() *InMemory {
	return &InMemory{lists: make(map[id.ListID]*models.List)}
}

func (s *InMemory) shard(listID id.ListID) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write(listID[:])
	return &s.shards[h.Sum32()%numListShards]
}

func (s *InMemory) get(listID id.ListID) (*models.List, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[listID]
	return l, ok
}

// Execute runs fn against a private copy of the list and commits it only when
// fn succeeds. The committed aggregate is returned as a fresh copy.
func (s *InMemory) Execute(ctx context.Context, listID id.ListID, fn func(*models.List) error) (*models.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "mutation aborted: context cancelled")
	}

	lock := s.shard(listID)
	lock.Lock()
	defer lock.Unlock()

	current, ok := s.get(listID)
	if !ok {
		return nil, models.ErrListNotFound
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lists[listID] = next
	s.mu.Unlock()
	return next.Clone(), nil
}

func (s *InMemory) CreateList(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[list.ID] = list.Clone()
	return nil
}

// DeleteList removes the aggregate together with its memberships and items.
func (s *InMemory) DeleteList(_ context.Context, listID id.ListID) error {
	lock := s.shard(listID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[listID]; !ok {
		return models.ErrListNotFound
	}
	delete(s.lists, listID)
	return nil
}

// FindListsForUser returns the total match count and one page of lists where
// userID holds any membership, newest first.
func (s *InMemory) FindListsForUser(_ context.Context, userID id.UserID, q models.ListQuery) (int, []*models.List, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	s.mu.RLock()
	var matched []*models.List
	for _, l := range s.lists {
		if l.Archived != q.Archived || l.RoleOf(userID) == models.RoleNone {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.Name), needle) {
			continue
		}
		matched = append(matched, l.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := len(matched)
	start := min(max(q.Offset(), 0), total)
	end := min(start+max(q.PageSize, 0), total)
	return total, matched[start:end], nil
}

// FindListForUser reports ErrListNotFound both for unknown lists and for lists
// userID is not a member of.
func (s *InMemory) FindListForUser(_ context.Context, listID id.ListID, userID id.UserID, includeResolved bool) (*models.List, error) {
	l, ok := s.get(listID)
	if !ok || l.RoleOf(userID) == models.RoleNone {
		return nil, models.ErrListNotFound
	}
	if !includeResolved {
		return l.WithoutResolved(), nil
	}
	return l.Clone(), nil
}

func (s *InMemory) FindMembershipRole(_ context.Context, listID id.ListID, userID id.UserID) (models.Role, error) {
	l, ok := s.get(listID)
	if !ok {
		return models.RoleNone, models.ErrListNotFound
	}
	role := l.RoleOf(userID)
	if role == models.RoleNone {
		return models.RoleNone, models.ErrMembershipMissing
	}
	return role, nil
}

func (s *InMemory) Rename(ctx context.Context, listID id.ListID, name string, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		return l.Rename(name, now)
	})
}

func (s *InMemory) SetArchived(ctx context.Context, listID id.ListID, archived bool, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		l.SetArchived(archived, now)
		return nil
	})
}

func (s *InMemory) AddMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		return l.AddMember(userID, now)
	})
}

func (s *InMemory) RemoveMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		return l.RemoveMember(userID, now)
	})
}

func (s *InMemory) AddItem(ctx context.Context, listID id.ListID, item models.Item, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		l.AddItem(item, now)
		return nil
	})
}

func (s *InMemory) UpdateItem(ctx context.Context, listID id.ListID, itemID id.ItemID, patch models.ItemPatch, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		return l.UpdateItem(itemID, patch, now)
	})
}

func (s *InMemory) RemoveItem(ctx context.Context, listID id.ListID, itemID id.ItemID, now time.Time) (*models.List, error) {
	return s.Execute(ctx, listID, func(l *models.List) error {
		return l.RemoveItem(itemID, now)
	})
}
