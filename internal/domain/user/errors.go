package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotChangeOwnRole     = errors.New("cannot change your own role")
	ErrEmailTaken              = errors.New("email already registered")
	ErrUsernameTaken           = errors.New("username already taken")
)
