package target

import "context"

// TargetRepository defines data access methods for monthly targets.
type TargetRepository interface {
	// Create persists a new target and returns it with generated fields
	Create(ctx context.Context, t MonthlyTarget) (MonthlyTarget, error)

	// GetByID retrieves a target owned by the given user
	GetByID(ctx context.Context, id string, userID string) (MonthlyTarget, error)

	// GetByMonth retrieves the user's target for (year, month).
	// Returns nil when none is configured; that is not an error.
	GetByMonth(ctx context.Context, userID string, year, month int) (*MonthlyTarget, error)

	// ListByUser retrieves all targets, year desc then month desc
	ListByUser(ctx context.Context, userID string) ([]MonthlyTarget, error)

	// Update rewrites target_hours and the day sub-range
	Update(ctx context.Context, t MonthlyTarget) (MonthlyTarget, error)

	// Delete permanently removes a target owned by the given user
	Delete(ctx context.Context, id string, userID string) error
}
