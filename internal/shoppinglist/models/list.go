package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/validation"
)

// Role is a caller's relationship to one list.
type Role string

const (
	RoleNone   Role = "none"
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// IsMember reports whether the role grants any access to the list.
func (r Role) IsMember() bool {
	return r == RoleOwner || r == RoleMember
}

// Membership ties a user to a list.
type Membership struct {
	UserID id.UserID
	Role   Role
}

// List is the aggregate root. It exclusively owns its memberships and items.
//
// Invariants:
//   - Name is non-empty after trimming and at most 100 characters
//   - Exactly one membership has RoleOwner
//   - At most one membership per user
//   - Item ids are unique within the list
type List struct {
	ID          id.ListID
	Name        string
	Archived    bool
	Memberships []Membership
	Items       []Item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewList creates a list owned by ownerID.
func NewList(listID id.ListID, ownerID id.UserID, name string, now time.Time) (*List, error) {
	name, err := NormalizeListName(name)
	if err != nil {
		return nil, err
	}
	return &List{
		ID:          listID,
		Name:        name,
		Memberships: []Membership{{UserID: ownerID, Role: RoleOwner}},
		Items:       []Item{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NormalizeListName trims name and enforces the list name rules.
func NormalizeListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", validation.Failed(validation.Violation{Field: "name", Rule: "required", Message: "name is required"})
	case utf8.RuneCountInString(name) > validation.MaxListNameLength:
		return "", validation.Failed(validation.Violation{Field: "name", Rule: "max", Message: "name must be at most 100 characters"})
	}
	return name, nil
}

// RoleOf returns userID's role on the list, RoleNone when not a member.
func (l *List) RoleOf(userID id.UserID) Role {
	for _, m := range l.Memberships {
		if m.UserID == userID {
			return m.Role
		}
	}
	return RoleNone
}

// Owner returns the owner's user id.
func (l *List) Owner() id.UserID {
	for _, m := range l.Memberships {
		if m.Role == RoleOwner {
			return m.UserID
		}
	}
	return id.UserID{}
}

// Rename validates and applies a new name.
func (l *List) Rename(name string, now time.Time) error {
	name, err := NormalizeListName(name)
	if err != nil {
		return err
	}
	l.Name = name
	l.UpdatedAt = now
	return nil
}

// SetArchived sets the archived flag. Setting the current value is a no-op.
func (l *List) SetArchived(archived bool, now time.Time) {
	if l.Archived == archived {
		return
	}
	l.Archived = archived
	l.UpdatedAt = now
}

// CanAddMember checks the uniqueness of memberships.
func (l *List) CanAddMember(userID id.UserID) error {
	if l.RoleOf(userID) != RoleNone {
		return ErrMembershipExists
	}
	return nil
}

// ApplyAddMember appends a member. Call CanAddMember first.
func (l *List) ApplyAddMember(userID id.UserID, now time.Time) {
	l.Memberships = append(l.Memberships, Membership{UserID: userID, Role: RoleMember})
	l.UpdatedAt = now
}

// AddMember validates and applies in one call.
func (l *List) AddMember(userID id.UserID, now time.Time) error {
	if err := l.CanAddMember(userID); err != nil {
		return err
	}
	l.ApplyAddMember(userID, now)
	return nil
}

// CanRemoveMember refuses missing memberships and the owner membership.
func (l *List) CanRemoveMember(userID id.UserID) error {
	switch l.RoleOf(userID) {
	case RoleNone:
		return ErrMembershipMissing
	case RoleOwner:
		return ErrOwnerMembership
	}
	return nil
}

// RemoveMember validates and removes userID's membership.
func (l *List) RemoveMember(userID id.UserID, now time.Time) error {
	if err := l.CanRemoveMember(userID); err != nil {
		return err
	}
	kept := l.Memberships[:0]
	for _, m := range l.Memberships {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	l.Memberships = kept
	l.UpdatedAt = now
	return nil
}

// AddItem appends item.
func (l *List) AddItem(item Item, now time.Time) {
	l.Items = append(l.Items, item)
	l.UpdatedAt = now
}

func (l *List) itemIndex(itemID id.ItemID) int {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// UpdateItem applies patch to the item. The patch must already be validated.
func (l *List) UpdateItem(itemID id.ItemID, patch ItemPatch, now time.Time) error {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	patch.ApplyTo(&l.Items[idx], now)
	l.UpdatedAt = now
	return nil
}

// RemoveItem deletes the item.
func (l *List) RemoveItem(itemID id.ItemID, now time.Time) error {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	l.UpdatedAt = now
	return nil
}

// ItemCounts returns total and unresolved item counts.
func (l *List) ItemCounts() (total, unresolved int) {
	for _, it := range l.Items {
		total++
		if !it.Resolved {
			unresolved++
		}
	}
	return total, unresolved
}

// WithoutResolved returns a copy whose item sequence omits resolved items.
func (l *List) WithoutResolved() *List {
	cp := l.Clone()
	kept := cp.Items[:0]
	for _, it := range cp.Items {
		if !it.Resolved {
			kept = append(kept, it)
		}
	}
	cp.Items = kept
	return cp
}

// Clone deep-copies the aggregate.
func (l *List) Clone() *List {
	cp := *l
	cp.Memberships = append(make([]Membership, 0, len(l.Memberships)), l.Memberships...)
	cp.Items = append(make([]Item, 0, len(l.Items)), l.Items...)
	return &cp
}
