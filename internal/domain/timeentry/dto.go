package timeentry

import (
	"time"

	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// ========================================
// TIME ENTRY DTOs
// ========================================

// RecordPunchRequest registers a single start or end punch for a
// calendar day. The timestamp is the day's date combined with the
// clock time, so a punch can never land outside its date.
type RecordPunchRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Kind string `json:"kind"` // start | end
	Time string `json:"time"` // HH:MM or HH:MM:SS

	// Provenance, set by the capture reconciler only
	PhotoPath     *string `json:"-"`
	ExtractedText *string `json:"-"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !PunchKind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be either 'start' or 'end'",
		})
	}

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	} else if _, ok := validator.IsValidClockTime(r.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM or HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEntryRequest patches an existing entry. Only the end bound and
// the confirmation flag are mutable after the fact.
type UpdateEntryRequest struct {
	EndTime     *string `json:"end_time,omitempty"` // RFC3339
	IsConfirmed *bool   `json:"is_confirmed,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.EndTime == nil && r.IsConfirmed == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "nothing to update",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EntryResponse represents a time entry in API responses.
type EntryResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Date          string   `json:"date"`
	StartTime     *string  `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	TotalHours    *float64 `json:"total_hours"`
	IsConfirmed   bool     `json:"is_confirmed"`
	PhotoPath     *string  `json:"photo_path,omitempty"`
	ExtractedText *string  `json:"extracted_text,omitempty"`
	CreatedAt     string   `json:"created_at"`

	// Present on admin read paths only
	Username     *string `json:"username,omitempty"`
	UserFullName *string `json:"user_full_name,omitempty"`
	UserEmail    *string `json:"user_email,omitempty"`
	UserRole     *string `json:"user_role,omitempty"`
}

func ToResponse(e TimeEntry) EntryResponse {
	resp := EntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Date:          e.Date.Format("2006-01-02"),
		StartTime:     formatTimePtr(e.StartTime),
		EndTime:       formatTimePtr(e.EndTime),
		TotalHours:    e.TotalHours,
		IsConfirmed:   e.IsConfirmed,
		PhotoPath:     e.PhotoPath,
		ExtractedText: e.ExtractedText,
		CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
		Username:      e.Username,
		UserFullName:  e.UserFullName,
		UserEmail:     e.UserEmail,
		UserRole:      e.UserRole,
	}
	return resp
}

func ToResponses(entries []TimeEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToResponse(e))
	}
	return out
}

// AdminEntryFilter narrows the admin read-all path.
type AdminEntryFilter struct {
	UserID        *string
	StartDate     *string // YYYY-MM-DD inclusive
	EndDate       *string // YYYY-MM-DD inclusive
	ConfirmedOnly *bool
}

func (f *AdminEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}
