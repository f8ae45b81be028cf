package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/userdeck/userdeck/internal/shared"
)

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role      shared.Role
		canAdd    bool
		canEdit   bool
		canDelete bool
		canRole   bool
	}{
		{shared.RoleAdmin, true, true, true, true},
		{shared.RoleEditor, false, true, false, false},
		{shared.RoleViewer, false, false, false, false},
		{shared.RoleNone, false, false, false, false},
		{shared.Role("Superuser"), false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.canAdd, CanAdd(tc.role))
			assert.Equal(t, tc.canEdit, CanEdit(tc.role))
			assert.Equal(t, tc.canDelete, CanDelete(tc.role))
			assert.Equal(t, tc.canRole, CanChangeRole(tc.role))
		})
	}
}

func TestDeleteAndAddAreAdminOnly(t *testing.T) {
	for _, role := range shared.Roles() {
		assert.Equal(t, role == shared.RoleAdmin, CanDelete(role))
		assert.Equal(t, role == shared.RoleAdmin, CanAdd(role))
		assert.Equal(t, role == shared.RoleAdmin || role == shared.RoleEditor, CanEdit(role))
	}
}
