package summary

// DailySummary aggregates one calendar day of the ledger. Open entries
// contribute zero hours but do count toward entries_count, so pending
// sessions stay visible.
type DailySummary struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	TotalHours   float64 `json:"total_hours"`
	EntriesCount int     `json:"entries_count"`
}

// MonthlySummary aggregates one calendar month. TotalDays counts days
// with at least one completed entry. Empty months produce a zero-valued
// summary, never an error.
type MonthlySummary struct {
	Month          string         `json:"month"` // English month name
	Year           int            `json:"year"`
	TotalHours     float64        `json:"total_hours"`
	TotalDays      int            `json:"total_days"`
	DailyBreakdown []DailySummary `json:"daily_breakdown"` // date ascending
}

// OverviewUser identifies the user a supervisor view is about.
type OverviewUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
}

// MonthOverview condenses one user's month for the supervisor views.
// Confirmed and pending partition the entry count.
type MonthOverview struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	TotalHours       float64 `json:"total_hours"`
	TotalEntries     int     `json:"total_entries"`
	ConfirmedEntries int     `json:"confirmed_entries"`
	PendingEntries   int     `json:"pending_entries"`
}

// TargetOverview pairs the month's target with progress derived from
// confirmed hours inside the target's counting window.
type TargetOverview struct {
	TargetHours        float64 `json:"target_hours"`
	CurrentHours       float64 `json:"current_hours"`
	RemainingHours     float64 `json:"remaining_hours"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// UserMonthlyOverview is one user's month as a supervisor sees it.
// Target is nil when the user has no target for the month; the daily
// breakdown is only populated on the single-user view.
type UserMonthlyOverview struct {
	User           OverviewUser    `json:"user"`
	Summary        MonthOverview   `json:"summary"`
	Target         *TargetOverview `json:"target,omitempty"`
	DailyBreakdown []DailySummary  `json:"daily_breakdown,omitempty"` // date ascending
}

// AllUsersOverview aggregates every worker's month, total hours
// descending.
type AllUsersOverview struct {
	Year       int                   `json:"year"`
	Month      int                   `json:"month"`
	TotalUsers int                   `json:"total_users"`
	TotalHours float64               `json:"total_hours_all_users"`
	Users      []UserMonthlyOverview `json:"users"`
}
