// Package service exposes the read-only user directory.
package service

import (
	"context"
	"log/slog"

	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/policy"
	"shoplist/internal/users/models"
	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/requestcontext"
)

type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Directory is the GET /users payload.
type Directory struct {
	Users []models.User `json:"users"`
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ListUsers returns every known user to any supported profile.
func (s *Service) ListUsers(ctx context.Context, caller identity.Identity) (*Directory, error) {
	d := policy.Authorize(policy.Request{
		Action:       policy.ActionListUsers,
		Profile:      caller.Profile,
		CallerUserID: caller.UserID,
	})
	if !d.Allowed {
		s.logger.WarnContext(ctx, "user directory denied",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", caller.UserID,
			"reason", d.Reason,
		)
		return nil, d.Err()
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load users")
	}
	if users == nil {
		users = []models.User{}
	}
	return &Directory{Users: users}, nil
}
