package summary

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/tempohq/tempo-backend-go/internal/domain/summary"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/cache"
)

// summaryTTL bounds staleness if an invalidation is ever lost.
const summaryTTL = 15 * time.Minute

type SummaryServiceImpl struct {
	timeentry.TimeEntryRepository
	users   user.UserRepository
	targets target.TargetRepository
	cache   *cache.Cache
}

func NewSummaryService(
	entryRepository timeentry.TimeEntryRepository,
	userRepository user.UserRepository,
	targetRepository target.TargetRepository,
	summaryCache *cache.Cache,
) summary.SummaryService {
	return &SummaryServiceImpl{
		TimeEntryRepository: entryRepository,
		users:               userRepository,
		targets:             targetRepository,
		cache:               summaryCache,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Daily implements summary.SummaryService.
func (s *SummaryServiceImpl) Daily(ctx context.Context, usr user.User, date string) (summary.DailySummary, error) {
	if !user.HasPermission(usr.Role, user.PermissionViewOwnTimeEntries) {
		return summary.DailySummary{}, user.ErrInsufficientPermissions
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	key := cache.DailySummaryKey(usr.ID, date)
	if s.cache != nil {
		var cached summary.DailySummary
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("failed to read summary cache", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	entries, err := s.TimeEntryRepository.ListByDate(ctx, usr.ID, day)
	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("failed to list day entries: %w", err)
	}

	result := aggregateDay(date, entries)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, summaryTTL); err != nil {
			slog.Warn("failed to write summary cache", "key", key, "error", err)
		}
	}

	return result, nil
}

// Monthly implements summary.SummaryService.
func (s *SummaryServiceImpl) Monthly(ctx context.Context, usr user.User, year, month int) (summary.MonthlySummary, error) {
	if !user.HasPermission(usr.Role, user.PermissionViewOwnTimeEntries) {
		return summary.MonthlySummary{}, user.ErrInsufficientPermissions
	}

	key := cache.MonthlySummaryKey(usr.ID, year, month)
	if s.cache != nil {
		var cached summary.MonthlySummary
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("failed to read summary cache", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	entries, err := s.TimeEntryRepository.ListByRange(ctx, usr.ID, from, to)
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to list month entries: %w", err)
	}

	result := aggregateMonth(year, month, entries)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, summaryTTL); err != nil {
			slog.Warn("failed to write summary cache", "key", key, "error", err)
		}
	}

	return result, nil
}

// UserOverview implements summary.SummaryService.
func (s *SummaryServiceImpl) UserOverview(ctx context.Context, usr user.User, targetUserID string, year, month int) (summary.UserMonthlyOverview, error) {
	if !user.CanViewAllTimeEntries(usr.Role) {
		return summary.UserMonthlyOverview{}, user.ErrInsufficientPermissions
	}

	subject, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		return summary.UserMonthlyOverview{}, err
	}

	return s.overviewFor(ctx, subject, year, month, true)
}

// AllUsersOverview implements summary.SummaryService. The roster
// covers workers only; supervisory roles track no hours.
func (s *SummaryServiceImpl) AllUsersOverview(ctx context.Context, usr user.User, year, month int) (summary.AllUsersOverview, error) {
	if !user.CanViewAllTimeEntries(usr.Role) {
		return summary.AllUsersOverview{}, user.ErrInsufficientPermissions
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return summary.AllUsersOverview{}, fmt.Errorf("failed to list users: %w", err)
	}

	result := summary.AllUsersOverview{
		Year:  year,
		Month: month,
		Users: make([]summary.UserMonthlyOverview, 0, len(users)),
	}

	for _, u := range users {
		if u.Role != user.RoleNormal {
			continue
		}
		overview, err := s.overviewFor(ctx, u, year, month, false)
		if err != nil {
			return summary.AllUsersOverview{}, err
		}
		result.Users = append(result.Users, overview)
		result.TotalHours += overview.Summary.TotalHours
	}

	sort.SliceStable(result.Users, func(i, j int) bool {
		return result.Users[i].Summary.TotalHours > result.Users[j].Summary.TotalHours
	})

	result.TotalUsers = len(result.Users)
	result.TotalHours = round2(result.TotalHours)
	return result, nil
}

// overviewFor folds one user's month and attaches target progress when
// a target is configured.
func (s *SummaryServiceImpl) overviewFor(ctx context.Context, subject user.User, year, month int, withBreakdown bool) (summary.UserMonthlyOverview, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	entries, err := s.TimeEntryRepository.ListByRange(ctx, subject.ID, from, to)
	if err != nil {
		return summary.UserMonthlyOverview{}, fmt.Errorf("failed to list month entries: %w", err)
	}

	monthly := aggregateMonth(year, month, entries)
	confirmed := 0
	for _, e := range entries {
		if e.IsConfirmed {
			confirmed++
		}
	}

	overview := summary.UserMonthlyOverview{
		User: summary.OverviewUser{
			ID:       subject.ID,
			Username: subject.Username,
			FullName: subject.FullName,
			Email:    subject.Email,
			Role:     string(subject.Role),
		},
		Summary: summary.MonthOverview{
			Year:             year,
			Month:            month,
			TotalHours:       monthly.TotalHours,
			TotalEntries:     len(entries),
			ConfirmedEntries: confirmed,
			PendingEntries:   len(entries) - confirmed,
		},
	}
	if withBreakdown {
		overview.DailyBreakdown = monthly.DailyBreakdown
	}

	t, err := s.targets.GetByMonth(ctx, subject.ID, year, month)
	if err != nil {
		return summary.UserMonthlyOverview{}, fmt.Errorf("failed to get target: %w", err)
	}
	if t != nil {
		targetFrom, targetTo := t.Range()
		current, err := s.TimeEntryRepository.SumConfirmedHours(ctx, subject.ID, targetFrom, targetTo)
		if err != nil {
			return summary.UserMonthlyOverview{}, fmt.Errorf("failed to sum confirmed hours: %w", err)
		}

		remaining := t.TargetHours - current
		if remaining < 0 {
			remaining = 0
		}
		percentage := 0.0
		if t.TargetHours > 0 {
			percentage = current / t.TargetHours * 100
			if percentage > 100 {
				percentage = 100
			}
		}

		overview.Target = &summary.TargetOverview{
			TargetHours:        t.TargetHours,
			CurrentHours:       round2(current),
			RemainingHours:     round2(remaining),
			ProgressPercentage: round1(percentage),
		}
	}

	return overview, nil
}

// aggregateDay folds one day's entries. Open entries count toward
// entries_count with zero hours so pending sessions stay visible.
func aggregateDay(date string, entries []timeentry.TimeEntry) summary.DailySummary {
	result := summary.DailySummary{
		Date:         date,
		EntriesCount: len(entries),
	}
	for _, e := range entries {
		if e.TotalHours != nil {
			result.TotalHours += *e.TotalHours
		}
	}
	result.TotalHours = round2(result.TotalHours)
	return result
}

// aggregateMonth folds a month into per-day summaries. TotalDays
// counts days with at least one completed entry; a day holding only
// open sessions appears in the breakdown but not in TotalDays.
func aggregateMonth(year, month int, entries []timeentry.TimeEntry) summary.MonthlySummary {
	byDay := make(map[string][]timeentry.TimeEntry)
	for _, e := range entries {
		day := e.Date.Format("2006-01-02")
		byDay[day] = append(byDay[day], e)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	result := summary.MonthlySummary{
		Month:          time.Month(month).String(),
		Year:           year,
		DailyBreakdown: make([]summary.DailySummary, 0, len(days)),
	}

	for _, day := range days {
		daily := aggregateDay(day, byDay[day])
		result.DailyBreakdown = append(result.DailyBreakdown, daily)
		result.TotalHours += daily.TotalHours

		for _, e := range byDay[day] {
			if e.IsCompleted() {
				result.TotalDays++
				break
			}
		}
	}

	result.TotalHours = round2(result.TotalHours)
	return result
}
