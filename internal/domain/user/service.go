package user

import "context"

// UserService defines business logic for the user/role surface.
type UserService interface {
	// Me returns the authenticated user's own record
	Me(ctx context.Context, usr User) (UserResponse, error)

	// UpdateProfile rewrites the caller's own email, username and
	// full name
	UpdateProfile(ctx context.Context, usr User, req UpdateProfileRequest) (UserResponse, error)

	// List returns every user; boss/admin only
	List(ctx context.Context, usr User) ([]UserResponse, error)

	// UpdateRole changes another user's role; admin only. Admins
	// cannot demote themselves.
	UpdateRole(ctx context.Context, usr User, targetUserID string, req UpdateRoleRequest) (UserResponse, error)

	// MyPermissions describes the caller's role and capability set
	MyPermissions(usr User) MyPermissionsResponse

	// UserPermissions describes another user's role and capability
	// set; boss/admin only
	UserPermissions(ctx context.Context, usr User, targetUserID string) (UserPermissionsResponse, error)

	// AssignableRoles lists every role with its description; admin only
	AssignableRoles(usr User) ([]RoleInfo, error)
}
