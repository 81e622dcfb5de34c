package service

import (
	"context"
	"strings"

	"shoplist/internal/audit"
	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	"shoplist/internal/shoppinglist/policy"
	"shoplist/internal/shoppinglist/view"
	id "shoplist/pkg/domain"
	dErrors "shoplist/pkg/domain-errors"
)

// DeleteResult is the payload of a successful delete.
type DeleteResult struct {
	ListID  string `json:"listId"`
	Deleted bool   `json:"deleted"`
}

// ListOverview returns one page of the caller's active or archived lists.
func (s *Service) ListOverview(ctx context.Context, caller identity.Identity, q models.ListQuery) (_ *view.Page, err error) {
	ctx, finish := s.start(ctx, policy.ActionViewOverview, "")
	defer finish(&err)

	if err := s.checkProfile(ctx, policy.ActionViewOverview, caller); err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(caller.UserID)
	if err != nil {
		return nil, err
	}

	q = q.WithDefaults()
	q.Search = strings.TrimSpace(q.Search)
	total, lists, err := s.store.FindListsForUser(ctx, userID, q)
	if err != nil {
		return nil, translate(err, "failed to load lists")
	}
	page := view.ToPage(total, q, lists, userID)
	return &page, nil
}

// CreateList creates a list owned by the caller.
func (s *Service) CreateList(ctx context.Context, caller identity.Identity, name string) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionCreateList, "")
	defer finish(&err)

	if d := policy.Authorize(policy.Request{Action: policy.ActionCreateList, Profile: caller.Profile}); !d.Allowed {
		s.denied(ctx, policy.ActionCreateList, d, caller)
		return nil, d.Err()
	}
	ownerID, err := id.ParseUserID(caller.UserID)
	if err != nil {
		return nil, err
	}

	list, err := models.NewList(id.NewListID(), ownerID, name, now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, translate(err, "failed to create list")
	}

	s.metrics.IncrementListsCreated()
	s.committed(ctx, policy.ActionCreateList, audit.Event{
		Action:  audit.ActionListCreated,
		ActorID: ownerID.String(),
		ListID:  list.ID.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// GetList returns the list detail. A caller who is not a member gets the same
// listNotFound as for an unknown list.
func (s *Service) GetList(ctx context.Context, caller identity.Identity, listID string, includeResolved bool) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionViewList, listID)
	defer finish(&err)

	if err := s.checkProfile(ctx, policy.ActionViewList, caller); err != nil {
		return nil, err
	}
	parsedList, err := id.ParseListID(listID)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(caller.UserID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.FindListForUser(ctx, parsedList, userID, includeResolved)
	if err != nil {
		return nil, translate(err, "failed to load list")
	}
	d := policy.Authorize(policy.Request{Action: policy.ActionViewList, Role: list.RoleOf(userID), Profile: caller.Profile})
	if !d.Allowed {
		s.denied(ctx, policy.ActionViewList, d, caller)
		return nil, dErrors.New(dErrors.CodeListNotFound, "list not found")
	}

	detail := view.ToDetail(list, includeResolved)
	return &detail, nil
}

// RenameList changes the list name. Owner only.
func (s *Service) RenameList(ctx context.Context, caller identity.Identity, listID, name string) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionRenameList, listID)
	defer finish(&err)

	name, err = models.NormalizeListName(name)
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionRenameList, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.Rename(ctx, res.ListID, name, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to rename list")
	}

	s.committed(ctx, policy.ActionRenameList, audit.Event{
		Action:  audit.ActionListRenamed,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// SetArchived archives or unarchives the list. Owner only; repeating is a no-op.
func (s *Service) SetArchived(ctx context.Context, caller identity.Identity, listID string, archived bool) (_ *view.Detail, err error) {
	action, auditAction := policy.ActionArchiveList, audit.ActionListArchived
	if !archived {
		action, auditAction = policy.ActionUnarchiveList, audit.ActionListUnarchived
	}
	ctx, finish := s.start(ctx, action, listID)
	defer finish(&err)

	res, err := s.authorize(ctx, caller, listID, action, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.SetArchived(ctx, res.ListID, archived, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to update archive state")
	}

	s.committed(ctx, action, audit.Event{
		Action:  auditAction,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// DeleteList removes the list with all memberships and items. Owner only.
func (s *Service) DeleteList(ctx context.Context, caller identity.Identity, listID string) (_ *DeleteResult, err error) {
	ctx, finish := s.start(ctx, policy.ActionDeleteList, listID)
	defer finish(&err)

	res, err := s.authorize(ctx, caller, listID, policy.ActionDeleteList, "")
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteList(ctx, res.ListID); err != nil {
		return nil, translate(err, "failed to delete list")
	}

	s.metrics.IncrementListsDeleted()
	s.committed(ctx, policy.ActionDeleteList, audit.Event{
		Action:  audit.ActionListDeleted,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
	})
	return &DeleteResult{ListID: res.ListID.String(), Deleted: true}, nil
}
