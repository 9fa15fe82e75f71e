package user

import (
	"context"
	"fmt"

	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context, usr user.User) (user.UserResponse, error) {
	// Re-read so role changes made after token issuance show up.
	current, err := s.UserRepository.GetByID(ctx, usr.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(current), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, usr user.User, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, usr.ID, req.Email, req.Username, req.FullName)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, usr user.User) ([]user.UserResponse, error) {
	if !user.CanViewAllUsers(usr.Role) {
		return nil, user.ErrInsufficientPermissions
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	return out, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, usr user.User, targetUserID string, req user.UpdateRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if !user.CanManageUserRoles(usr.Role) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	if targetUserID == usr.ID {
		return user.UserResponse{}, user.ErrCannotChangeOwnRole
	}

	// Confirm the target exists before writing; UPDATE alone would
	// fold "missing" and "updated" into the same no-rows result.
	if _, err := s.UserRepository.GetByID(ctx, targetUserID); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateRole(ctx, targetUserID, user.Role(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

// MyPermissions implements user.UserService.
func (s *UserServiceImpl) MyPermissions(usr user.User) user.MyPermissionsResponse {
	return user.MyPermissionsResponse{
		Role:        user.InfoFor(usr.Role),
		Permissions: user.PermissionsFor(usr.Role),
	}
}

// UserPermissions implements user.UserService.
func (s *UserServiceImpl) UserPermissions(ctx context.Context, usr user.User, targetUserID string) (user.UserPermissionsResponse, error) {
	if !user.CanViewAllUsers(usr.Role) {
		return user.UserPermissionsResponse{}, user.ErrInsufficientPermissions
	}

	subject, err := s.UserRepository.GetByID(ctx, targetUserID)
	if err != nil {
		return user.UserPermissionsResponse{}, err
	}

	return user.UserPermissionsResponse{
		UserID:      subject.ID,
		Username:    subject.Username,
		FullName:    subject.FullName,
		Role:        user.InfoFor(subject.Role),
		Permissions: user.PermissionsFor(subject.Role),
	}, nil
}

// AssignableRoles implements user.UserService.
func (s *UserServiceImpl) AssignableRoles(usr user.User) ([]user.RoleInfo, error) {
	if !user.CanManageUserRoles(usr.Role) {
		return nil, user.ErrInsufficientPermissions
	}
	return user.AvailableRoles(), nil
}
