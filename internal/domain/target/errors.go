package target

import "errors"

var (
	ErrTargetNotFound      = errors.New("target not found")
	ErrTargetAlreadyExists = errors.New("target already exists for this month")

	// ErrNoTargetSet signals that no target is configured for the
	// requested month. Legitimately absent, not a failure: callers
	// render "no target set" instead of an error.
	ErrNoTargetSet = errors.New("no target set for this month")
)
