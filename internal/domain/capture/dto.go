package capture

import (
	"mime/multipart"
	"strings"

	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// ========================================
// PHOTO CAPTURE DTOs
// ========================================

type UploadPhotoRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadPhotoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "time card photo is required",
		})
	} else {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if !validator.IsInSlice(ext, []string{".jpg", ".jpeg", ".png"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "time card photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UploadPhotoResponse carries the OCR output back to the caller.
// Suggestions are hints only; either may be absent.
type UploadPhotoResponse struct {
	PhotoPath          string  `json:"photo_path"`
	PhotoURL           string  `json:"photo_url,omitempty"`
	ExtractedText      string  `json:"extracted_text"`
	SuggestedStartTime *string `json:"suggested_start_time,omitempty"` // HH:MM:SS
	SuggestedEndTime   *string `json:"suggested_end_time,omitempty"`   // HH:MM:SS
	SuggestedDate      *string `json:"suggested_date,omitempty"`       // YYYY-MM-DD
}

// ConfirmRequest turns an uploaded photo into exactly one punch. The
// user picks which bound this photo represents; a single confirmation
// never writes both.
type ConfirmRequest struct {
	Date          string `json:"date"`      // YYYY-MM-DD
	TimeType      string `json:"time_type"` // start | end
	Time          string `json:"time"`      // HH:MM or HH:MM:SS
	PhotoPath     string `json:"photo_path"`
	ExtractedText string `json:"extracted_text"`
}

func (r *ConfirmRequest) Validate() error {
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

	if !timeentry.PunchKind(r.TimeType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "time_type",
			Message: "time_type must be either 'start' or 'end'",
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

	if validator.IsEmpty(r.PhotoPath) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_path",
			Message: "photo_path is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
