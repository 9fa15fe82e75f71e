package capture

import "errors"

var (
	// ErrExtractionFailed wraps any OCR transport or decode failure.
	// Recoverable: the caller falls back to manual entry.
	ErrExtractionFailed = errors.New("failed to extract text from photo")

	ErrPhotoNotFound = errors.New("photo file not found")
)
