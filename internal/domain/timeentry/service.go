package timeentry

import (
	"context"

	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// TimeEntryService defines business logic for the punch ledger.
// Every operation takes the authenticated user explicitly; the service
// never reads an ambient session.
type TimeEntryService interface {
	// RecordPunch appends a start punch as a new entry, or pairs an end
	// punch with the most recently opened unclosed entry of that date
	RecordPunch(ctx context.Context, usr user.User, req RecordPunchRequest) (EntryResponse, error)

	// FindUnclosedEntries returns the user's open sessions
	FindUnclosedEntries(ctx context.Context, usr user.User) ([]EntryResponse, error)

	// ListMonth returns a month's entries, date asc then start_time asc
	ListMonth(ctx context.Context, usr user.User, year, month int) ([]EntryResponse, error)

	// ListDay returns one day's entries, start_time asc
	ListDay(ctx context.Context, usr user.User, date string) ([]EntryResponse, error)

	// UpdateEntry patches the end bound and/or confirmation flag
	UpdateEntry(ctx context.Context, usr user.User, entryID string, req UpdateEntryRequest) (EntryResponse, error)

	// DeleteEntry permanently removes an entry and its proof photo
	DeleteEntry(ctx context.Context, usr user.User, entryID string) error

	// ListAllEntries is the boss/admin read path across users
	ListAllEntries(ctx context.Context, usr user.User, filter AdminEntryFilter) ([]EntryResponse, error)

	// ListUserEntries is the boss/admin read path for one user
	ListUserEntries(ctx context.Context, usr user.User, targetUserID string, filter AdminEntryFilter) ([]EntryResponse, error)
}
