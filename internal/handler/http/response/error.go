package response

import (
	"errors"
	"net/http"

	"github.com/tempohq/tempo-backend-go/internal/domain/capture"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Time entry domain errors
	case errors.Is(err, timeentry.ErrNoOpenSession):
		BadRequest(w, "No open session for this date, register a start time first", nil)
	case errors.Is(err, timeentry.ErrEndBeforeStart):
		BadRequest(w, "End time must be after start time", nil)
	case errors.Is(err, timeentry.ErrDuplicatePunch):
		Conflict(w, "An identical punch is already recorded")
	case errors.Is(err, timeentry.ErrEntryWithoutBounds):
		BadRequest(w, "Time entry must have a start or an end time", nil)
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Target domain errors
	case errors.Is(err, target.ErrTargetNotFound):
		NotFound(w, "Target not found")
	case errors.Is(err, target.ErrTargetAlreadyExists):
		Conflict(w, "Target already exists for this month")

	// Capture domain errors
	case errors.Is(err, capture.ErrExtractionFailed):
		BadGateway(w, "Failed to extract text from photo")
	case errors.Is(err, capture.ErrPhotoNotFound):
		NotFound(w, "Photo file not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotChangeOwnRole):
		BadRequest(w, "Cannot change your own role", nil)
	case errors.Is(err, user.ErrEmailTaken):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUsernameTaken):
		Conflict(w, "Username already taken")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
