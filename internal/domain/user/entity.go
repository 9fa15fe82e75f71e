package user

import "time"

type Role string

const (
	RoleNormal Role = "normal" // Tracks own time and targets
	RoleBoss   Role = "boss"   // Can additionally view every user's data
	RoleAdmin  Role = "admin"  // Full access including role management
)

// Roles lists every valid role variant. The set is closed; anything
// outside it resolves to zero permissions.
var Roles = []Role{RoleNormal, RoleBoss, RoleAdmin}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID        string
	Email     string
	Username  string
	FullName  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsBoss checks if user is boss or admin
func (u *User) IsBoss() bool {
	return u.Role == RoleBoss || u.Role == RoleAdmin
}
