package target

import "time"

// MonthlyTarget is a per-user goal for a calendar month, optionally
// narrowed to a (start_day, end_day) sub-range of counting days.
// Unique per (user, year, month); created and deleted explicitly,
// never auto-created.
type MonthlyTarget struct {
	ID          string
	UserID      string
	Year        int
	Month       int // 1-12
	StartDay    int // first day of month that counts (1-31)
	EndDay      int // last day that counts; wraps into next month when < StartDay
	TargetHours float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Range resolves the target's counting window as [from, to), where to
// is exclusive. When EndDay < StartDay the window crosses into the
// following month.
func (t *MonthlyTarget) Range() (time.Time, time.Time) {
	from := time.Date(t.Year, time.Month(t.Month), t.StartDay, 0, 0, 0, 0, time.UTC)

	var to time.Time
	if t.EndDay >= t.StartDay {
		to = time.Date(t.Year, time.Month(t.Month), t.EndDay+1, 0, 0, 0, 0, time.UTC)
	} else {
		to = time.Date(t.Year, time.Month(t.Month)+1, t.EndDay+1, 0, 0, 0, 0, time.UTC)
	}
	return from, to
}

// LastDayOfMonth returns the number of days in a month.
func LastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
