package timeentry

import (
	"time"
)

// PunchKind is the side of a work session a punch represents. A single
// punch never carries both bounds.
type PunchKind string

const (
	PunchStart PunchKind = "start"
	PunchEnd   PunchKind = "end"
)

func (k PunchKind) Valid() bool {
	return k == PunchStart || k == PunchEnd
}

type TimeEntry struct {
	ID            string
	UserID        string
	Date          time.Time // calendar day, midnight UTC
	StartTime     *time.Time
	EndTime       *time.Time
	TotalHours    *float64
	IsConfirmed   bool
	PhotoPath     *string
	ExtractedText *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	Username     *string
	UserFullName *string
	UserEmail    *string
	UserRole     *string
}

// IsOpen reports whether the entry is an open session: a start punch
// with no matching end yet.
func (e *TimeEntry) IsOpen() bool {
	return e.StartTime != nil && e.EndTime == nil
}

// IsCompleted reports whether both bounds are set.
func (e *TimeEntry) IsCompleted() bool {
	return e.StartTime != nil && e.EndTime != nil
}

// ComputeTotalHours returns the fractional duration in hours, defined
// only when both bounds exist and the end strictly follows the start.
// Anything else yields nil, never zero.
func ComputeTotalHours(e TimeEntry) *float64 {
	if e.StartTime == nil || e.EndTime == nil {
		return nil
	}
	if !e.EndTime.After(*e.StartTime) {
		return nil
	}
	hours := e.EndTime.Sub(*e.StartTime).Hours()
	return &hours
}
