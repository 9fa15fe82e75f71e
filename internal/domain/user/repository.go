package user

import "context"

// UserRepository defines data access methods for user records.
// The core never validates credentials; users arrive here already
// authenticated and this repository only serves the read/role paths.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// List retrieves every user, ordered by creation time
	List(ctx context.Context) ([]User, error)

	// UpdateRole changes a user's role and returns the updated record
	UpdateRole(ctx context.Context, id string, role Role) (User, error)

	// UpdateProfile rewrites a user's identity fields. ErrEmailTaken
	// and ErrUsernameTaken surface uniqueness conflicts.
	UpdateProfile(ctx context.Context, id string, email, username string, fullName *string) (User, error)
}
