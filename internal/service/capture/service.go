package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tempohq/tempo-backend-go/internal/domain/capture"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/metrics"
	"github.com/tempohq/tempo-backend-go/internal/pkg/ocr"
	"github.com/tempohq/tempo-backend-go/internal/service/photo"
)

// photoURLExpiry bounds how long a returned photo link stays valid.
const photoURLExpiry = 24 * time.Hour

type CaptureServiceImpl struct {
	entryService timeentry.TimeEntryService
	photoService photo.PhotoService
	ocrClient    *ocr.Client
}

func NewCaptureService(
	entryService timeentry.TimeEntryService,
	photoService photo.PhotoService,
	ocrClient *ocr.Client,
) capture.CaptureService {
	return &CaptureServiceImpl{
		entryService: entryService,
		photoService: photoService,
		ocrClient:    ocrClient,
	}
}

// ProcessPhoto implements capture.CaptureService.
func (s *CaptureServiceImpl) ProcessPhoto(ctx context.Context, usr user.User, req capture.UploadPhotoRequest) (capture.UploadPhotoResponse, error) {
	if err := req.Validate(); err != nil {
		return capture.UploadPhotoResponse{}, err
	}

	if !user.HasPermission(usr.Role, user.PermissionCreateOwnTimeEntries) {
		return capture.UploadPhotoResponse{}, user.ErrInsufficientPermissions
	}

	photoPath, err := s.photoService.UploadTimeCard(ctx, usr.ID, req.File, req.FileHeader.Filename)
	if err != nil {
		return capture.UploadPhotoResponse{}, fmt.Errorf("failed to store time card photo: %w", err)
	}

	// The upload consumed the stream; rewind it for the OCR call.
	if _, err := req.File.Seek(0, io.SeekStart); err != nil {
		s.cleanupPhoto(ctx, photoPath)
		return capture.UploadPhotoResponse{}, fmt.Errorf("failed to rewind photo stream: %w", err)
	}

	result, err := s.ocrClient.Extract(ctx, req.File, req.FileHeader.Filename)
	if err != nil {
		metrics.OCRExtractionsTotal.WithLabelValues("error").Inc()
		s.cleanupPhoto(ctx, photoPath)
		return capture.UploadPhotoResponse{}, fmt.Errorf("%w: %v", capture.ErrExtractionFailed, err)
	}
	metrics.OCRExtractionsTotal.WithLabelValues("success").Inc()

	// When the service returns raw text without timestamp hints, fall
	// back to pattern matching over the text.
	if result.SuggestedStartTime == nil && result.SuggestedEndTime == nil {
		result.SuggestedStartTime, result.SuggestedEndTime = ocr.ParseTimes(result.ExtractedText)
	}
	if result.SuggestedDate == nil {
		result.SuggestedDate = ocr.ParseDate(result.ExtractedText)
	}

	// Best effort; the path alone is enough to confirm the punch.
	photoURL, err := s.photoService.GetURL(ctx, photoPath, photoURLExpiry)
	if err != nil {
		slog.Warn("failed to build photo URL", "path", photoPath, "error", err)
	}

	return capture.UploadPhotoResponse{
		PhotoPath:          photoPath,
		PhotoURL:           photoURL,
		ExtractedText:      result.ExtractedText,
		SuggestedStartTime: result.SuggestedStartTime,
		SuggestedEndTime:   result.SuggestedEndTime,
		SuggestedDate:      result.SuggestedDate,
	}, nil
}

// Confirm implements capture.CaptureService.
func (s *CaptureServiceImpl) Confirm(ctx context.Context, usr user.User, req capture.ConfirmRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	exists, err := s.photoService.Exists(ctx, req.PhotoPath)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to check photo: %w", err)
	}
	if !exists {
		return timeentry.EntryResponse{}, capture.ErrPhotoNotFound
	}

	punch := timeentry.RecordPunchRequest{
		Date:      req.Date,
		Kind:      req.TimeType,
		Time:      req.Time,
		PhotoPath: &req.PhotoPath,
	}
	if req.ExtractedText != "" {
		punch.ExtractedText = &req.ExtractedText
	}

	// One confirmation writes exactly one punch, going through the
	// same pairing rules as manual entry.
	return s.entryService.RecordPunch(ctx, usr, punch)
}

// cleanupPhoto removes a stored photo after a failed extraction.
func (s *CaptureServiceImpl) cleanupPhoto(ctx context.Context, path string) {
	if err := s.photoService.Delete(ctx, path); err != nil {
		slog.Warn("failed to clean up photo after OCR failure", "path", path, "error", err)
	}
}
