// Package policy decides whether a caller may perform an action on a list.
// This is pure domain logic: no I/O, no side effects.
package policy

import (
	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	dErrors "shoplist/pkg/domain-errors"
)

// Action is an operation subject to authorization.
type Action string

const (
	ActionViewOverview  Action = "view_overview"
	ActionViewList      Action = "view_list"
	ActionCreateList    Action = "create_list"
	ActionRenameList    Action = "rename_list"
	ActionArchiveList   Action = "archive_list"
	ActionUnarchiveList Action = "unarchive_list"
	ActionDeleteList    Action = "delete_list"
	ActionAddMember     Action = "add_member"
	ActionRemoveMember  Action = "remove_member"
	ActionAddItem       Action = "add_item"
	ActionUpdateItem    Action = "update_item"
	ActionRemoveItem    Action = "remove_item"
	ActionListUsers     Action = "list_users"
)

// Reason explains a decision for logs and audit.
type Reason string

const (
	ReasonAllowed            Reason = "allowed"
	ReasonUnsupportedProfile Reason = "unsupported_profile"
	ReasonRoleInsufficient   Reason = "role_insufficient"
	ReasonOwnerOnly          Reason = "owner_only"
	ReasonNotSelf            Reason = "not_self"
	ReasonOwnerMembership    Reason = "owner_membership_protected"
	ReasonUnknownAction      Reason = "unknown_action"
)

// Request carries everything a decision depends on.
// TargetUserID is only consulted for ActionRemoveMember.
type Request struct {
	Action       Action
	Role         models.Role
	Profile      identity.ProfileTier
	CallerUserID string
	TargetUserID string
}

// Decision is the policy outcome. Code is set when Allowed is false.
type Decision struct {
	Allowed bool
	Code    dErrors.Code
	Reason  Reason
}

// Err converts a denial into its domain error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Code {
	case dErrors.CodeInsufficientListRole:
		return dErrors.New(d.Code, "caller's list role does not permit this action")
	case dErrors.CodeMembershipMissing:
		return dErrors.New(d.Code, "the owner membership cannot be removed")
	default:
		return dErrors.New(dErrors.CodeNotAuthorized, "profile is not authorized for this operation")
	}
}

type roleSet map[models.Role]bool

var (
	members = roleSet{models.RoleOwner: true, models.RoleMember: true}
	owners  = roleSet{models.RoleOwner: true}
)

// rules maps list-scoped actions to the roles allowed to perform them.
// ActionRemoveMember is handled separately because it depends on the target.
var rules = map[Action]roleSet{
	ActionViewList:      members,
	ActionRenameList:    owners,
	ActionArchiveList:   owners,
	ActionUnarchiveList: owners,
	ActionDeleteList:    owners,
	ActionAddMember:     owners,
	ActionAddItem:       members,
	ActionUpdateItem:    members,
	ActionRemoveItem:    members,
}

// CheckProfile applies only the tier rule. It runs before any role lookup.
func CheckProfile(profile identity.ProfileTier) Decision {
	if !profile.Supported() {
		return deny(dErrors.CodeNotAuthorized, ReasonUnsupportedProfile)
	}
	return allow()
}

// Authorize is total and deterministic over (action, role, tier, target).
//
// Rule priority:
//  1. Unsupported profile tier denies everything
//  2. Actions without a list role (overview, create, user directory) are allowed
//  3. Member removal: owner removes anyone, a member removes only themselves
//  4. Table lookup for the remaining list actions
func Authorize(req Request) Decision {
	if d := CheckProfile(req.Profile); !d.Allowed {
		return d
	}

	switch req.Action {
	case ActionViewOverview, ActionCreateList, ActionListUsers:
		return allow()
	case ActionRemoveMember:
		return authorizeRemoveMember(req)
	}

	allowed, known := rules[req.Action]
	if !known {
		return deny(dErrors.CodeNotAuthorized, ReasonUnknownAction)
	}
	if allowed[req.Role] {
		return allow()
	}
	if req.Role.IsMember() {
		return deny(dErrors.CodeInsufficientListRole, ReasonOwnerOnly)
	}
	return deny(dErrors.CodeInsufficientListRole, ReasonRoleInsufficient)
}

func authorizeRemoveMember(req Request) Decision {
	switch {
	case req.Role == models.RoleOwner:
		return allow()
	case req.Role == models.RoleMember && req.TargetUserID == req.CallerUserID:
		return allow()
	case req.Role == models.RoleMember:
		return deny(dErrors.CodeInsufficientListRole, ReasonNotSelf)
	default:
		return deny(dErrors.CodeInsufficientListRole, ReasonRoleInsufficient)
	}
}

// CanRemoveMembership refuses removal of the owner's membership, whoever asks.
func CanRemoveMembership(targetRole models.Role) Decision {
	if targetRole == models.RoleOwner {
		return deny(dErrors.CodeMembershipMissing, ReasonOwnerMembership)
	}
	return allow()
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

func deny(code dErrors.Code, reason Reason) Decision {
	return Decision{Code: code, Reason: reason}
}
