package timeentry

import "errors"

// Time entry domain errors
var (
	// Punch pairing errors
	ErrNoOpenSession      = errors.New("no open session for this date, register a start time first")
	ErrEndBeforeStart     = errors.New("end time must be strictly after start time")
	ErrDuplicatePunch     = errors.New("an identical punch is already recorded")
	ErrEntryWithoutBounds = errors.New("time entry must have a start or an end time")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
)
