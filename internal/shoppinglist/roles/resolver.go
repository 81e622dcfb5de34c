// Package roles resolves a caller's role on a list from stored memberships.
package roles

import (
	"context"
	"errors"

	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/sentinel"
)

// MembershipFinder looks up one membership.
type MembershipFinder interface {
	FindMembershipRole(ctx context.Context, listID id.ListID, userID id.UserID) (models.Role, error)
}

// Resolution is the parsed request target plus the caller's role on it.
type Resolution struct {
	ListID id.ListID
	UserID id.UserID
	Role   models.Role
}

type Resolver struct {
	memberships MembershipFinder
}

func NewResolver(memberships MembershipFinder) *Resolver {
	return &Resolver{memberships: memberships}
}

// Resolve parses listID and the caller's user id (CodeInvalidID on malformed
// input) and returns the caller's role. An unknown list or a missing membership
// both resolve to RoleNone without error.
func (r *Resolver) Resolve(ctx context.Context, listID string, caller identity.Identity) (Resolution, error) {
	parsedList, err := id.ParseListID(listID)
	if err != nil {
		return Resolution{}, err
	}
	parsedUser, err := id.ParseUserID(caller.UserID)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{ListID: parsedList, UserID: parsedUser, Role: models.RoleNone}
	role, err := r.memberships.FindMembershipRole(ctx, parsedList, parsedUser)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return res, nil
	case err != nil:
		return Resolution{}, err
	}
	res.Role = role
	return res, nil
}
