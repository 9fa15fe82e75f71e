package timeentry

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access methods for the punch ledger.
// Every method is scoped by the owning user's ID; records are never
// shared-mutable across users.
type TimeEntryRepository interface {
	// Create persists a new entry and returns it with generated fields
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves an entry owned by the given user
	GetByID(ctx context.Context, id string, userID string) (TimeEntry, error)

	// Update rewrites the mutable fields of an entry
	Update(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// Delete permanently removes an entry owned by the given user
	Delete(ctx context.Context, id string, userID string) error

	// ListByDate retrieves a day's entries, start_time ascending
	ListByDate(ctx context.Context, userID string, date time.Time) ([]TimeEntry, error)

	// ListByRange retrieves entries with from <= date < to,
	// date ascending then start_time ascending
	ListByRange(ctx context.Context, userID string, from, to time.Time) ([]TimeEntry, error)

	// FindOpenByDate retrieves the day's open sessions, most recently
	// opened first. Used by the end-punch pairing rule.
	FindOpenByDate(ctx context.Context, userID string, date time.Time) ([]TimeEntry, error)

	// FindUnclosed retrieves every open session for the user, date descending
	FindUnclosed(ctx context.Context, userID string) ([]TimeEntry, error)

	// FindByPunch retrieves an entry already carrying the exact same
	// punch, keyed by (user, date, kind, timestamp). Returns nil when
	// no such entry exists. Used to deduplicate retried submissions.
	FindByPunch(ctx context.Context, userID string, date time.Time, kind PunchKind, ts time.Time) (*TimeEntry, error)

	// SumConfirmedHours sums total_hours over confirmed completed
	// entries with from <= date < to
	SumConfirmedHours(ctx context.Context, userID string, from, to time.Time) (float64, error)

	// ListAll retrieves entries across users with user details joined
	// in, date descending. Admin/boss read path only.
	ListAll(ctx context.Context, filter AdminEntryFilter) ([]TimeEntry, error)

	// CountStaleOpen counts open sessions across users whose date is
	// before the cutoff. Maintenance/reporting only.
	CountStaleOpen(ctx context.Context, before time.Time) (int64, error)
}
