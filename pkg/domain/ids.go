package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "shoplist/pkg/domain-errors"
)

// Typed identifiers keep list, item and user ids from being swapped at
// compile time. All of them are UUIDs on the wire.
type (
	UserID uuid.UUID
	ListID uuid.UUID
	ItemID uuid.UUID
)

// maxIDLength bounds input before it reaches uuid.Parse.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidID, kind+" is not a valid identifier")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidID, kind+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidID, kind+" is not a valid identifier")
	}
	return parsed, nil
}

// ParseUserID parses a user id from external input.
// Errors carry CodeInvalidID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("userId", s)
	return UserID(u), err
}

// ParseListID parses a list id from external input.
func ParseListID(s string) (ListID, error) {
	u, err := parseUUID("listId", s)
	return ListID(u), err
}

// ParseItemID parses an item id from external input.
func ParseItemID(s string) (ItemID, error) {
	u, err := parseUUID("itemId", s)
	return ItemID(u), err
}

func NewListID() ListID { return ListID(uuid.New()) }
func NewItemID() ItemID { return ItemID(uuid.New()) }
func NewUserID() UserID { return UserID(uuid.New()) }

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id ListID) String() string { return uuid.UUID(id).String() }
func (id ItemID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ListID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed ids serialize as plain UUID strings.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ListID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ItemID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ListID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ItemID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
