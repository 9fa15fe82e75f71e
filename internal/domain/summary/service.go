package summary

import (
	"context"

	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// SummaryService derives read-side aggregates from the ledger. The
// results are a pure function of ledger state at query time; any cache
// in front must be invalidated on every ledger write for the affected
// user and month.
type SummaryService interface {
	// Daily aggregates a single day (YYYY-MM-DD)
	Daily(ctx context.Context, usr user.User, date string) (DailySummary, error)

	// Monthly aggregates a calendar month with a per-day breakdown
	Monthly(ctx context.Context, usr user.User, year, month int) (MonthlySummary, error)

	// UserOverview aggregates another user's month with their target
	// progress; boss/admin only
	UserOverview(ctx context.Context, usr user.User, targetUserID string, year, month int) (UserMonthlyOverview, error)

	// AllUsersOverview aggregates every worker's month, total hours
	// descending; boss/admin only
	AllUsersOverview(ctx context.Context, usr user.User, year, month int) (AllUsersOverview, error)
}
