package capture

import (
	"context"

	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// CaptureService bridges OCR output into the ledger with the same
// pairing rules as manual entry, adding photo provenance.
type CaptureService interface {
	// ProcessPhoto stores the photo, runs it through the external OCR
	// service and returns the extracted text plus timestamp hints.
	// OCR failures surface as ErrExtractionFailed; they are never
	// retried here.
	ProcessPhoto(ctx context.Context, usr user.User, req UploadPhotoRequest) (UploadPhotoResponse, error)

	// Confirm writes exactly one punch through the ledger, attaching
	// the photo path and extracted text as provenance.
	Confirm(ctx context.Context, usr user.User, req ConfirmRequest) (timeentry.EntryResponse, error)
}
