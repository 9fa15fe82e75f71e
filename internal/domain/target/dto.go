package target

import (
	"fmt"

	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY TARGET DTOs
// ========================================

type CreateTargetRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	StartDay    int     `json:"start_day,omitempty"` // defaults to 1
	EndDay      int     `json:"end_day,omitempty"`   // defaults to the month's last day
	TargetHours float64 `json:"target_hours"`
}

// ApplyDefaults fills the optional sub-range bounds before validation.
func (r *CreateTargetRequest) ApplyDefaults() {
	if r.StartDay == 0 {
		r.StartDay = 1
	}
	if r.EndDay == 0 {
		r.EndDay = LastDayOfMonth(r.Year, r.Month)
	}
}

func (r *CreateTargetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2020 || r.Year > 2030 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2020 and 2030",
		})
	}

	if r.TargetHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_hours",
			Message: "target hours must be greater than 0",
		})
	}

	if r.Month >= 1 && r.Month <= 12 {
		lastDay := LastDayOfMonth(r.Year, r.Month)
		if r.StartDay < 1 || r.StartDay > lastDay {
			errs = append(errs, validator.ValidationError{
				Field:   "start_day",
				Message: fmt.Sprintf("start day must be between 1 and %d for month %d", lastDay, r.Month),
			})
		}
		if r.EndDay < 1 || r.EndDay > lastDay {
			errs = append(errs, validator.ValidationError{
				Field:   "end_day",
				Message: fmt.Sprintf("end day must be between 1 and %d for month %d", lastDay, r.Month),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTargetRequest struct {
	TargetHours *float64 `json:"target_hours,omitempty"`
	StartDay    *int     `json:"start_day,omitempty"`
	EndDay      *int     `json:"end_day,omitempty"`
}

// Validate checks the patch against the month the target belongs to.
func (r *UpdateTargetRequest) Validate(year, month int) error {
	var errs validator.ValidationErrors

	if r.TargetHours == nil && r.StartDay == nil && r.EndDay == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "nothing to update",
		})
	}

	if r.TargetHours != nil && *r.TargetHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_hours",
			Message: "target hours must be greater than 0",
		})
	}

	lastDay := LastDayOfMonth(year, month)
	if r.StartDay != nil && (*r.StartDay < 1 || *r.StartDay > lastDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_day",
			Message: fmt.Sprintf("start day must be between 1 and %d for month %d", lastDay, month),
		})
	}
	if r.EndDay != nil && (*r.EndDay < 1 || *r.EndDay > lastDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_day",
			Message: fmt.Sprintf("end day must be between 1 and %d for month %d", lastDay, month),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TargetResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	StartDay    int     `json:"start_day"`
	EndDay      int     `json:"end_day"`
	TargetHours float64 `json:"target_hours"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(t MonthlyTarget) TargetResponse {
	return TargetResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Year:        t.Year,
		Month:       t.Month,
		StartDay:    t.StartDay,
		EndDay:      t.EndDay,
		TargetHours: t.TargetHours,
		CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ProgressResponse pairs a target with progress derived from the
// ledger at query time.
type ProgressResponse struct {
	Target             TargetResponse `json:"target"`
	CurrentHours       float64        `json:"current_hours"`
	RemainingHours     float64        `json:"remaining_hours"`
	ProgressPercentage float64        `json:"progress_percentage"`
}
