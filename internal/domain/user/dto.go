package user

import (
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FullName  *string `json:"full_name,omitempty"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// UpdateRoleRequest represents request to change a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Validate rejects anything outside the closed role set.
func (r *UpdateRoleRequest) Validate() error {
	if !Role(r.Role).Valid() {
		return ErrInvalidRole
	}
	return nil
}

// UpdateProfileRequest rewrites the caller's own identity fields.
// Credentials live in the external identity service and are not
// mutable here.
type UpdateProfileRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MyPermissionsResponse is the payload of the permissions endpoint.
type MyPermissionsResponse struct {
	Role        RoleInfo     `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// UserPermissionsResponse describes another user's capability set for
// the supervisor views.
type UserPermissionsResponse struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	FullName    *string      `json:"full_name,omitempty"`
	Role        RoleInfo     `json:"role"`
	Permissions []Permission `json:"permissions"`
}
