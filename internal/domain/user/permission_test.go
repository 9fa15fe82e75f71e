package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	// Every role can manage its own ledger
	for _, role := range Roles {
		assert.True(t, HasPermission(role, PermissionViewOwnTimeEntries), "role %s", role)
		assert.True(t, HasPermission(role, PermissionCreateOwnTimeEntries), "role %s", role)
		assert.True(t, HasPermission(role, PermissionUpdateOwnTimeEntries), "role %s", role)
		assert.True(t, HasPermission(role, PermissionDeleteOwnTimeEntries), "role %s", role)
		assert.True(t, HasPermission(role, PermissionManageOwnTargets), "role %s", role)
	}

	// Normal users never see other users' data
	assert.False(t, HasPermission(RoleNormal, PermissionViewAllUsers))
	assert.False(t, HasPermission(RoleNormal, PermissionViewAllTimeEntries))
	assert.False(t, HasPermission(RoleNormal, PermissionViewAllTargets))
	assert.False(t, HasPermission(RoleNormal, PermissionManageUserRoles))
	assert.False(t, HasPermission(RoleNormal, PermissionViewAdminDashboard))

	// Boss reads everything but cannot manage roles
	assert.True(t, HasPermission(RoleBoss, PermissionViewAllUsers))
	assert.True(t, HasPermission(RoleBoss, PermissionViewAllTimeEntries))
	assert.True(t, HasPermission(RoleBoss, PermissionViewAllTargets))
	assert.True(t, HasPermission(RoleBoss, PermissionViewAdminDashboard))
	assert.False(t, HasPermission(RoleBoss, PermissionManageUserRoles))

	// Admin holds every permission
	for _, p := range PermissionsFor(RoleAdmin) {
		assert.True(t, HasPermission(RoleAdmin, p))
	}
	assert.True(t, HasPermission(RoleAdmin, PermissionManageUserRoles))
}

func TestHasPermissionUnknownRole(t *testing.T) {
	assert.False(t, HasPermission(Role("superuser"), PermissionViewOwnTimeEntries))
	assert.Empty(t, PermissionsFor(Role("superuser")))
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	perms := PermissionsFor(RoleNormal)
	assert.Len(t, perms, 5)

	perms[0] = Permission("tampered")
	assert.True(t, HasPermission(RoleNormal, PermissionViewOwnTimeEntries))
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, role.Valid())
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestDerivedPredicates(t *testing.T) {
	assert.True(t, CanViewAllTimeEntries(RoleBoss))
	assert.False(t, CanViewAllTimeEntries(RoleNormal))
	assert.True(t, CanManageUserRoles(RoleAdmin))
	assert.False(t, CanManageUserRoles(RoleBoss))
	assert.True(t, CanViewAdminDashboard(RoleBoss))
	assert.False(t, CanViewAdminDashboard(RoleNormal))
}
