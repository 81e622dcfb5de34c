package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"shoplist/internal/users/models"
	id "shoplist/pkg/domain"
)

// InMemory is the directory used when no database is configured.
type InMemory struct {
	mu    sync.RWMutex
	users map[id.UserID]models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.UserID]models.User)}
}

// Upsert inserts or renames users.
func (s *InMemory) Upsert(_ context.Context, users ...models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	return nil
}

// ListUsers returns all users ordered by name, then id.
func (s *InMemory) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.User) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
