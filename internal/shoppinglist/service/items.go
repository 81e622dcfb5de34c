package service

import (
	"context"

	"shoplist/internal/audit"
	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	"shoplist/internal/shoppinglist/policy"
	"shoplist/internal/shoppinglist/view"
	id "shoplist/pkg/domain"
)

// NewItem is the input for AddItem. Zero Quantity means 1.
type NewItem struct {
	Name     string
	Quantity int
}

// AddItem appends an unresolved item. Owner or member.
func (s *Service) AddItem(ctx context.Context, caller identity.Identity, listID string, in NewItem) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionAddItem, listID)
	defer finish(&err)

	item, err := models.NewItem(id.NewItemID(), in.Name, in.Quantity, now(ctx))
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionAddItem, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.AddItem(ctx, res.ListID, item, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to add item")
	}

	s.committed(ctx, policy.ActionAddItem, audit.Event{
		Action:  audit.ActionItemAdded,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
		ItemID:  item.ID.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// UpdateItem applies a partial update. Owner or member.
func (s *Service) UpdateItem(ctx context.Context, caller identity.Identity, listID, itemID string, patch models.ItemPatch) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionUpdateItem, listID)
	defer finish(&err)

	parsedItem, err := id.ParseItemID(itemID)
	if err != nil {
		return nil, err
	}
	patch, err = patch.Normalize()
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionUpdateItem, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.UpdateItem(ctx, res.ListID, parsedItem, patch, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to update item")
	}

	s.committed(ctx, policy.ActionUpdateItem, audit.Event{
		Action:  audit.ActionItemUpdated,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
		ItemID:  parsedItem.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}

// RemoveItem deletes an item. Owner or member.
func (s *Service) RemoveItem(ctx context.Context, caller identity.Identity, listID, itemID string) (_ *view.Detail, err error) {
	ctx, finish := s.start(ctx, policy.ActionRemoveItem, listID)
	defer finish(&err)

	parsedItem, err := id.ParseItemID(itemID)
	if err != nil {
		return nil, err
	}
	res, err := s.authorize(ctx, caller, listID, policy.ActionRemoveItem, "")
	if err != nil {
		return nil, err
	}
	list, err := s.store.RemoveItem(ctx, res.ListID, parsedItem, now(ctx))
	if err != nil {
		return nil, translate(err, "failed to remove item")
	}

	s.committed(ctx, policy.ActionRemoveItem, audit.Event{
		Action:  audit.ActionItemRemoved,
		ActorID: res.UserID.String(),
		ListID:  res.ListID.String(),
		ItemID:  parsedItem.String(),
	})
	detail := view.ToDetail(list, true)
	return &detail, nil
}
