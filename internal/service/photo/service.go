package photo

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tempohq/tempo-backend-go/internal/pkg/storage"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

// allowedPhotoExtensions lists the accepted time card formats.
var allowedPhotoExtensions = []string{".jpg", ".jpeg", ".png"}

// PhotoService owns where time card photos live. Callers hand it a
// stream and get back the storage path they persist as provenance.
type PhotoService interface {
	// UploadTimeCard stores a time card photo under the owning user
	UploadTimeCard(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Delete removes a stored photo
	Delete(ctx context.Context, path string) error

	// Exists checks whether a stored photo is still present
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL generates a URL for serving a stored photo
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type photoServiceImpl struct {
	storage storage.FileStorage
}

func NewPhotoService(storage storage.FileStorage) PhotoService {
	return &photoServiceImpl{
		storage: storage,
	}
}

// UploadTimeCard stores a time card photo with a unique filename
func (s *photoServiceImpl) UploadTimeCard(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if !validator.IsInSlice(ext, allowedPhotoExtensions) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s%s", uniqueID, ext)
	path := filepath.Join("timecards", userID, newFilename)

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload time card photo: %w", err)
	}

	return uploadedPath, nil
}

func (s *photoServiceImpl) Delete(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (s *photoServiceImpl) Exists(ctx context.Context, path string) (bool, error) {
	exists, err := s.storage.Exists(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to check photo existence: %w", err)
	}
	return exists, nil
}

func (s *photoServiceImpl) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	url, err := s.storage.GetURL(ctx, path, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to build photo URL: %w", err)
	}
	return url, nil
}
