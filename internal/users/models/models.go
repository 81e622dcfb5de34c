// Package models holds the read-only user directory entries.
package models

import (
	"strings"

	id "shoplist/pkg/domain"
	dErrors "shoplist/pkg/domain-errors"
)

const maxUserNameLength = 100

// User is a directory entry clients pick members from.
type User struct {
	ID   id.UserID `json:"id"`
	Name string    `json:"name"`
}

// NewUser validates a directory entry before it is seeded.
func NewUser(userID id.UserID, name string) (User, error) {
	name = strings.TrimSpace(name)
	if userID.IsNil() {
		return User{}, dErrors.New(dErrors.CodeInvalidID, "userId is required")
	}
	if name == "" || len(name) > maxUserNameLength {
		return User{}, dErrors.New(dErrors.CodeValidation, "user name must be 1-100 characters")
	}
	return User{ID: userID, Name: name}, nil
}

// ParseSeed parses "<uuid>:<name>" entries.
func ParseSeed(entries []string) ([]User, error) {
	out := make([]User, 0, len(entries))
	for _, entry := range entries {
		rawID, name, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "user seed entry must be <id>:<name>")
		}
		userID, err := id.ParseUserID(rawID)
		if err != nil {
			return nil, err
		}
		u, err := NewUser(userID, name)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
