package models

import (
	"fmt"

	"shoplist/pkg/platform/sentinel"
)

// Store-level facts about the list aggregate. Each wraps a sentinel so callers
// can match either the precise fact or its class.
var (
	ErrListNotFound      = fmt.Errorf("list %w", sentinel.ErrNotFound)
	ErrItemNotFound      = fmt.Errorf("item %w", sentinel.ErrNotFound)
	ErrMembershipMissing = fmt.Errorf("membership %w", sentinel.ErrNotFound)
	ErrMembershipExists  = fmt.Errorf("membership %w", sentinel.ErrConflict)
	ErrOwnerMembership   = fmt.Errorf("owner membership cannot be removed: %w", sentinel.ErrInvalidState)
)
