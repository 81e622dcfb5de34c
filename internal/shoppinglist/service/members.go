package service

import (
	"context"

	"shoplist/internal/audit"
	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/policy"
	"shoplist/internal/shoppinglist/view"
	id "shoplist/pkg/domain"
)

// AddMember adds userID as a member. Owner only.
func (s *Service) AddMember(ctx context.Context, caller identity.Identity, listID, userID string) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionAddMember, listID)
	defer finish(&err)

	target, err := id.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionAddMember, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.AddMembership(ctx, res.ListID, target, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to add member")
	}

	s.committed(ctx, policy.ActionAddMember, audit.Event{
		Action:        audit.ActionMemberAdded,
		ActorID:       res.UserID.String(),
		ListID:        res.ListID.String(),
		SubjectUserID: target.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// RemoveMember removes userID's membership. The owner may remove anyone but
// themselves; a member may only remove (leave) themselves.
func (s *Service) RemoveMember(ctx context.Context, caller identity.Identity, listID, userID string) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionRemoveMember, listID)
	defer finish(&err)

	target, err := id.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionRemoveMember, target.String())
	if err != nil {
		return nil, err
	}
	list, err := s.store.RemoveMembership(ctx, res.ListID, target, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to remove member")
	}

	s.committed(ctx, policy.ActionRemoveMember, audit.Event{
		Action:        audit.ActionMemberRemoved,
		ActorID:       res.UserID.String(),
		ListID:        res.ListID.String(),
		SubjectUserID: target.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}
