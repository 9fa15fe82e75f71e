package target

import (
	"context"

	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// TargetService defines business logic for monthly targets and
// target-progress tracking.
type TargetService interface {
	// Create registers a new target; duplicates per (user, year, month)
	// are rejected
	Create(ctx context.Context, usr user.User, req CreateTargetRequest) (TargetResponse, error)

	// List returns the user's targets, newest month first
	List(ctx context.Context, usr user.User) ([]TargetResponse, error)

	// Progress combines the month's target with hours derived from the
	// ledger inside the target's day sub-range. ErrNoTargetSet when the
	// month has no target configured.
	Progress(ctx context.Context, usr user.User, year, month int) (ProgressResponse, error)

	// CurrentProgress is Progress for the current calendar month
	CurrentProgress(ctx context.Context, usr user.User) (ProgressResponse, error)

	// Update patches target_hours and/or the day sub-range
	Update(ctx context.Context, usr user.User, targetID string, req UpdateTargetRequest) (TargetResponse, error)

	// Delete permanently removes a target
	Delete(ctx context.Context, usr user.User, targetID string) error
}
