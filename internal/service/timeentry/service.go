package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/cache"
	"github.com/tempohq/tempo-backend-go/internal/pkg/database"
	"github.com/tempohq/tempo-backend-go/internal/pkg/metrics"
	"github.com/tempohq/tempo-backend-go/internal/repository/postgresql"
	"github.com/tempohq/tempo-backend-go/internal/service/photo"
)

type TimeEntryServiceImpl struct {
	db *database.DB
	timeentry.TimeEntryRepository
	photoService photo.PhotoService
	cache        *cache.Cache
}

func NewTimeEntryService(
	db *database.DB,
	entryRepository timeentry.TimeEntryRepository,
	photoService photo.PhotoService,
	summaryCache *cache.Cache,
) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		db:                  db,
		TimeEntryRepository: entryRepository,
		photoService:        photoService,
		cache:               summaryCache,
	}
}

// withTx wraps fn in a database transaction. Repositories not backed
// by the pool run fn directly.
func (s *TimeEntryServiceImpl) withTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// combinePunchTime anchors a clock time onto its calendar day so a
// punch can never land outside the date it was submitted for.
func combinePunchTime(date time.Time, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		time.UTC,
	)
}

// invalidateSummaries drops the cached aggregates touched by a ledger
// write. Best effort; a failed invalidation is logged, not returned.
func (s *TimeEntryServiceImpl) invalidateSummaries(ctx context.Context, userID string, date time.Time) {
	if s.cache == nil {
		return
	}
	keys := []string{
		cache.DailySummaryKey(userID, date.Format("2006-01-02")),
		cache.MonthlySummaryKey(userID, date.Year(), int(date.Month())),
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.Warn("failed to invalidate summary cache", "user_id", userID, "error", err)
	}
}

// RecordPunch implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) RecordPunch(ctx context.Context, usr user.User, req timeentry.RecordPunchRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	if !user.HasPermission(usr.Role, user.PermissionCreateOwnTimeEntries) {
		return timeentry.EntryResponse{}, user.ErrInsufficientPermissions
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	clock, err := time.Parse("15:04:05", req.Time)
	if err != nil {
		clock, _ = time.Parse("15:04", req.Time)
	}
	ts := combinePunchTime(date, clock)
	kind := timeentry.PunchKind(req.Kind)

	var result timeentry.TimeEntry
	err = s.withTx(ctx, func(txCtx context.Context) error {
		// Retried submissions carrying the exact same punch return the
		// entry already holding it instead of writing twice.
		existing, err := s.TimeEntryRepository.FindByPunch(txCtx, usr.ID, date, kind, ts)
		if err != nil {
			return fmt.Errorf("failed to check for duplicate punch: %w", err)
		}
		if existing != nil {
			result = *existing
			return nil
		}

		switch kind {
		case timeentry.PunchStart:
			// A start punch always opens a new session, even when other
			// sessions for the day are still open.
			entry := timeentry.TimeEntry{
				UserID:        usr.ID,
				Date:          date,
				StartTime:     &ts,
				PhotoPath:     req.PhotoPath,
				ExtractedText: req.ExtractedText,
			}
			result, err = s.TimeEntryRepository.Create(txCtx, entry)
			if err != nil {
				return fmt.Errorf("failed to create time entry: %w", err)
			}
			return nil

		case timeentry.PunchEnd:
			open, err := s.TimeEntryRepository.FindOpenByDate(txCtx, usr.ID, date)
			if err != nil {
				return fmt.Errorf("failed to find open sessions: %w", err)
			}
			if len(open) == 0 {
				return timeentry.ErrNoOpenSession
			}

			// Pair with the most recently opened session.
			entry := open[0]
			if entry.StartTime != nil && !ts.After(*entry.StartTime) {
				return timeentry.ErrEndBeforeStart
			}
			entry.EndTime = &ts
			entry.TotalHours = timeentry.ComputeTotalHours(entry)
			if req.PhotoPath != nil {
				entry.PhotoPath = req.PhotoPath
			}
			if req.ExtractedText != nil {
				entry.ExtractedText = req.ExtractedText
			}

			result, err = s.TimeEntryRepository.Update(txCtx, entry)
			if err != nil {
				return fmt.Errorf("failed to close time entry: %w", err)
			}
			return nil
		}

		return fmt.Errorf("unknown punch kind %q", kind)
	})
	if err != nil {
		// A concurrent identical submission may have committed this
		// punch after the duplicate check ran: the insert then hits the
		// unique punch index, or the open session is already closed.
		// Re-read before failing so both submitters get the one stored
		// entry.
		if errors.Is(err, timeentry.ErrDuplicatePunch) || errors.Is(err, timeentry.ErrNoOpenSession) {
			existing, lookupErr := s.TimeEntryRepository.FindByPunch(ctx, usr.ID, date, kind, ts)
			if lookupErr == nil && existing != nil {
				metrics.PunchesTotal.WithLabelValues(string(kind), "success").Inc()
				return timeentry.ToResponse(*existing), nil
			}
		}

		outcome := "error"
		if errors.Is(err, timeentry.ErrNoOpenSession) || errors.Is(err, timeentry.ErrEndBeforeStart) || errors.Is(err, timeentry.ErrDuplicatePunch) {
			outcome = "rejected"
		}
		metrics.PunchesTotal.WithLabelValues(string(kind), outcome).Inc()
		return timeentry.EntryResponse{}, err
	}

	metrics.PunchesTotal.WithLabelValues(string(kind), "success").Inc()
	s.invalidateSummaries(ctx, usr.ID, date)

	return timeentry.ToResponse(result), nil
}

// FindUnclosedEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) FindUnclosedEntries(ctx context.Context, usr user.User) ([]timeentry.EntryResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionViewOwnTimeEntries) {
		return nil, user.ErrInsufficientPermissions
	}

	entries, err := s.TimeEntryRepository.FindUnclosed(ctx, usr.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unclosed entries: %w", err)
	}

	return timeentry.ToResponses(entries), nil
}

// ListMonth implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListMonth(ctx context.Context, usr user.User, year, month int) ([]timeentry.EntryResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionViewOwnTimeEntries) {
		return nil, user.ErrInsufficientPermissions
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	entries, err := s.TimeEntryRepository.ListByRange(ctx, usr.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list month entries: %w", err)
	}

	return timeentry.ToResponses(entries), nil
}

// ListDay implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListDay(ctx context.Context, usr user.User, date string) ([]timeentry.EntryResponse, error) {
	if !user.HasPermission(usr.Role, user.PermissionViewOwnTimeEntries) {
		return nil, user.ErrInsufficientPermissions
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	entries, err := s.TimeEntryRepository.ListByDate(ctx, usr.ID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list day entries: %w", err)
	}

	return timeentry.ToResponses(entries), nil
}

// UpdateEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, usr user.User, entryID string, req timeentry.UpdateEntryRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	if !user.HasPermission(usr.Role, user.PermissionUpdateOwnTimeEntries) {
		return timeentry.EntryResponse{}, user.ErrInsufficientPermissions
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, entryID, usr.ID)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	if req.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return timeentry.EntryResponse{}, fmt.Errorf("invalid end_time: %w", err)
		}
		endTime = endTime.UTC()
		if entry.StartTime != nil && !endTime.After(*entry.StartTime) {
			return timeentry.EntryResponse{}, timeentry.ErrEndBeforeStart
		}
		entry.EndTime = &endTime
		entry.TotalHours = timeentry.ComputeTotalHours(entry)
	}

	if req.IsConfirmed != nil {
		entry.IsConfirmed = *req.IsConfirmed
	}

	updated, err := s.TimeEntryRepository.Update(ctx, entry)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.invalidateSummaries(ctx, usr.ID, entry.Date)

	return timeentry.ToResponse(updated), nil
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, usr user.User, entryID string) error {
	if !user.HasPermission(usr.Role, user.PermissionDeleteOwnTimeEntries) {
		return user.ErrInsufficientPermissions
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, entryID, usr.ID)
	if err != nil {
		return err
	}

	if err := s.TimeEntryRepository.Delete(ctx, entryID, usr.ID); err != nil {
		return err
	}

	// The proof photo goes with the entry. Losing this cleanup only
	// leaks a file, so it never fails the delete.
	if entry.PhotoPath != nil && s.photoService != nil {
		if err := s.photoService.Delete(ctx, *entry.PhotoPath); err != nil {
			slog.Warn("failed to delete proof photo", "entry_id", entryID, "error", err)
		}
	}

	s.invalidateSummaries(ctx, usr.ID, entry.Date)

	return nil
}

// ListAllEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListAllEntries(ctx context.Context, usr user.User, filter timeentry.AdminEntryFilter) ([]timeentry.EntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if !user.CanViewAllTimeEntries(usr.Role) {
		return nil, user.ErrInsufficientPermissions
	}

	entries, err := s.TimeEntryRepository.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list all entries: %w", err)
	}

	return timeentry.ToResponses(entries), nil
}

// ListUserEntries implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) ListUserEntries(ctx context.Context, usr user.User, targetUserID string, filter timeentry.AdminEntryFilter) ([]timeentry.EntryResponse, error) {
	filter.UserID = &targetUserID
	return s.ListAllEntries(ctx, usr, filter)
}
