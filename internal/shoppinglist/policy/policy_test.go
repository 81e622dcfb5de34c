package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shoplist/internal/identity"
	"shoplist/internal/shoppinglist/models"
	dErrors "shoplist/pkg/domain-errors"
)

func TestAuthorize_RoleTable(t *testing.T) {
	ownerOnly := []Action{ActionRenameList, ActionArchiveList, ActionUnarchiveList, ActionDeleteList, ActionAddMember}
	anyMember := []Action{ActionViewList, ActionAddItem, ActionUpdateItem, ActionRemoveItem}

	for _, action := range ownerOnly {
		t.Run(string(action), func(t *testing.T) {
			assert.True(t, Authorize(Request{Action: action, Role: models.RoleOwner, Profile: identity.ProfileUser}).Allowed)

			d := Authorize(Request{Action: action, Role: models.RoleMember, Profile: identity.ProfileUser})
			assert.False(t, d.Allowed)
			assert.Equal(t, dErrors.CodeInsufficientListRole, d.Code)

			d = Authorize(Request{Action: action, Role: models.RoleNone, Profile: identity.ProfileUser})
			assert.Equal(t, dErrors.CodeInsufficientListRole, d.Code)
		})
	}

	for _, action := range anyMember {
		t.Run(string(action), func(t *testing.T) {
			assert.True(t, Authorize(Request{Action: action, Role: models.RoleOwner, Profile: identity.ProfileUser}).Allowed)
			assert.True(t, Authorize(Request{Action: action, Role: models.RoleMember, Profile: identity.ProfileAdmin}).Allowed)

			d := Authorize(Request{Action: action, Role: models.RoleNone, Profile: identity.ProfileUser})
			assert.False(t, d.Allowed)
			assert.Equal(t, dErrors.CodeInsufficientListRole, d.Code)
		})
	}
}

func TestAuthorize_RoleFreeActions(t *testing.T) {
	for _, action := range []Action{ActionViewOverview, ActionCreateList, ActionListUsers} {
		assert.True(t, Authorize(Request{Action: action, Role: models.RoleNone, Profile: identity.ProfileUser}).Allowed, action)
	}
}

func TestAuthorize_UnsupportedProfileDeniedRegardlessOfRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleOwner, models.RoleMember, models.RoleNone} {
		for _, action := range []Action{ActionViewList, ActionCreateList, ActionDeleteList, ActionViewOverview} {
			d := Authorize(Request{Action: action, Role: role, Profile: "guest"})
			assert.False(t, d.Allowed)
			assert.Equal(t, dErrors.CodeNotAuthorized, d.Code)
			assert.Equal(t, ReasonUnsupportedProfile, d.Reason)
			assert.True(t, dErrors.HasCode(d.Err(), dErrors.CodeNotAuthorized))
		}
	}
}

func TestAuthorize_RemoveMember(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		caller  string
		target  string
		allowed bool
	}{
		{"owner removes other member", models.RoleOwner, "a", "b", true},
		{"member leaves", models.RoleMember, "b", "b", true},
		{"member removes other", models.RoleMember, "b", "c", false},
		{"non-member removes self", models.RoleNone, "d", "d", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(Request{
				Action:       ActionRemoveMember,
				Role:         tt.role,
				Profile:      identity.ProfileUser,
				CallerUserID: tt.caller,
				TargetUserID: tt.target,
			})
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, dErrors.CodeInsufficientListRole, d.Code)
			}
		})
	}
}

func TestAuthorize_UnknownActionDenied(t *testing.T) {
	d := Authorize(Request{Action: "explode", Role: models.RoleOwner, Profile: identity.ProfileUser})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownAction, d.Reason)
}

func TestCanRemoveMembership(t *testing.T) {
	d := CanRemoveMembership(models.RoleOwner)
	assert.False(t, d.Allowed)
	assert.True(t, dErrors.HasCode(d.Err(), dErrors.CodeMembershipMissing))
	assert.True(t, CanRemoveMembership(models.RoleMember).Allowed)
	assert.NoError(t, CanRemoveMembership(models.RoleMember).Err())
}
