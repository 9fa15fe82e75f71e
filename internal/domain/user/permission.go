package user

type Permission string

const (
	// Time tracking
	PermissionViewOwnTimeEntries   Permission = "view_own_time_entries"
	PermissionCreateOwnTimeEntries Permission = "create_own_time_entries"
	PermissionUpdateOwnTimeEntries Permission = "update_own_time_entries"
	PermissionDeleteOwnTimeEntries Permission = "delete_own_time_entries"

	// Monthly targets
	PermissionManageOwnTargets Permission = "manage_own_targets"
	PermissionViewAllTargets   Permission = "view_all_targets"

	// Admin
	PermissionViewAllUsers       Permission = "view_all_users"
	PermissionViewAllTimeEntries Permission = "view_all_time_entries"
	PermissionManageUserRoles    Permission = "manage_user_roles"
	PermissionViewAdminDashboard Permission = "view_admin_dashboard"
)

// RolePermissions maps roles to their permissions. Process-wide static
// configuration; never mutated after init.
var RolePermissions = map[Role][]Permission{
	RoleNormal: {
		PermissionViewOwnTimeEntries,
		PermissionCreateOwnTimeEntries,
		PermissionUpdateOwnTimeEntries,
		PermissionDeleteOwnTimeEntries,
		PermissionManageOwnTargets,
	},
	RoleBoss: {
		PermissionViewOwnTimeEntries,
		PermissionCreateOwnTimeEntries,
		PermissionUpdateOwnTimeEntries,
		PermissionDeleteOwnTimeEntries,
		PermissionManageOwnTargets,
		PermissionViewAllUsers,
		PermissionViewAllTimeEntries,
		PermissionViewAdminDashboard,
		PermissionViewAllTargets,
	},
	RoleAdmin: {
		PermissionViewOwnTimeEntries,
		PermissionCreateOwnTimeEntries,
		PermissionUpdateOwnTimeEntries,
		PermissionDeleteOwnTimeEntries,
		PermissionManageOwnTargets,
		PermissionViewAllUsers,
		PermissionViewAllTimeEntries,
		PermissionManageUserRoles,
		PermissionViewAdminDashboard,
		PermissionViewAllTargets,
	},
}

// HasPermission checks if a role has a specific permission.
// Unknown roles resolve to the empty permission set: the check is a
// total function and never fails.
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// PermissionsFor returns every permission granted to a role.
// Unknown roles get an empty slice, never nil panics or errors.
func PermissionsFor(role Role) []Permission {
	permissions, exists := RolePermissions[role]
	if !exists {
		return []Permission{}
	}
	out := make([]Permission, len(permissions))
	copy(out, permissions)
	return out
}

// Convenience predicates. All of them go through HasPermission so the
// capability table stays the single source of truth.

func CanViewAllTimeEntries(role Role) bool {
	return HasPermission(role, PermissionViewAllTimeEntries)
}

func CanViewAllUsers(role Role) bool {
	return HasPermission(role, PermissionViewAllUsers)
}

func CanManageUserRoles(role Role) bool {
	return HasPermission(role, PermissionManageUserRoles)
}

func CanViewAdminDashboard(role Role) bool {
	return HasPermission(role, PermissionViewAdminDashboard)
}

// RoleInfo describes a role for the role-management UI.
type RoleInfo struct {
	Value       Role   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// AvailableRoles returns every assignable role with its description.
func AvailableRoles() []RoleInfo {
	return []RoleInfo{
		{Value: RoleNormal, Label: "Normal User", Description: "Can track time and manage own data"},
		{Value: RoleBoss, Label: "Boss", Description: "Can view all users' data and manage team"},
		{Value: RoleAdmin, Label: "Admin", Description: "Full access to all features and user management"},
	}
}

// InfoFor returns the description of a single role.
func InfoFor(role Role) RoleInfo {
	for _, info := range AvailableRoles() {
		if info.Value == role {
			return info
		}
	}
	return RoleInfo{Value: role, Label: string(role), Description: "Unknown role"}
}
