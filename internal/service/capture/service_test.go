package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempohq/tempo-backend-go/internal/domain/capture"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/ocr"
	"github.com/tempohq/tempo-backend-go/internal/service/photo"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func photoRequest(filename string) capture.UploadPhotoRequest {
	content := []byte("fake image bytes")
	return capture.UploadPhotoRequest{
		File: memFile{bytes.NewReader(content)},
		FileHeader: &multipart.FileHeader{
			Filename: filename,
			Size:     int64(len(content)),
		},
	}
}

// fakePhotoStore tracks stored paths in memory.
type fakePhotoStore struct {
	stored  map[string]bool
	deleted []string
}

var _ photo.PhotoService = (*fakePhotoStore)(nil)

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{stored: make(map[string]bool)}
}

func (f *fakePhotoStore) UploadTimeCard(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	path := "timecards/" + userID + "/" + filename
	f.stored[path] = true
	return path, nil
}

func (f *fakePhotoStore) Delete(ctx context.Context, path string) error {
	delete(f.stored, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakePhotoStore) Exists(ctx context.Context, path string) (bool, error) {
	return f.stored[path], nil
}

func (f *fakePhotoStore) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost/" + path, nil
}

// fakeEntryService records the punch Confirm forwards.
type fakeEntryService struct {
	timeentry.TimeEntryService
	lastPunch timeentry.RecordPunchRequest
	punches   int
}

func (f *fakeEntryService) RecordPunch(ctx context.Context, usr user.User, req timeentry.RecordPunchRequest) (timeentry.EntryResponse, error) {
	f.lastPunch = req
	f.punches++
	return timeentry.EntryResponse{ID: "entry-1", Date: req.Date}, nil
}

func ocrServer(t *testing.T, result ocr.Result, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/extract", r.URL.Path)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}))
}

func testUser() user.User {
	return user.User{ID: "user-1", Role: user.RoleNormal}
}

func TestProcessPhoto(t *testing.T) {
	startHint := "08:30:00"
	endHint := "17:00:00"
	server := ocrServer(t, ocr.Result{
		ExtractedText:      "IN 08:30 OUT 17:00",
		SuggestedStartTime: &startHint,
		SuggestedEndTime:   &endHint,
	}, http.StatusOK)
	defer server.Close()

	store := newFakePhotoStore()
	svc := NewCaptureService(&fakeEntryService{}, store, ocr.NewClient(server.URL, 5*time.Second))

	resp, err := svc.ProcessPhoto(context.Background(), testUser(), photoRequest("card.jpg"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.PhotoPath)
	assert.Equal(t, "http://localhost/"+resp.PhotoPath, resp.PhotoURL)
	assert.Equal(t, "IN 08:30 OUT 17:00", resp.ExtractedText)
	require.NotNil(t, resp.SuggestedStartTime)
	assert.Equal(t, "08:30:00", *resp.SuggestedStartTime)
	require.NotNil(t, resp.SuggestedEndTime)
	assert.Equal(t, "17:00:00", *resp.SuggestedEndTime)
}

func TestProcessPhotoFallbackParsing(t *testing.T) {
	// No hints from the service: suggestions come from the raw text
	server := ocrServer(t, ocr.Result{
		ExtractedText: "shift 09:15 to 18:45 on 15/01/2024",
	}, http.StatusOK)
	defer server.Close()

	store := newFakePhotoStore()
	svc := NewCaptureService(&fakeEntryService{}, store, ocr.NewClient(server.URL, 5*time.Second))

	resp, err := svc.ProcessPhoto(context.Background(), testUser(), photoRequest("card.png"))
	require.NoError(t, err)

	require.NotNil(t, resp.SuggestedStartTime)
	assert.Equal(t, "09:15:00", *resp.SuggestedStartTime)
	require.NotNil(t, resp.SuggestedEndTime)
	assert.Equal(t, "18:45:00", *resp.SuggestedEndTime)
	require.NotNil(t, resp.SuggestedDate)
	assert.Equal(t, "2024-01-15", *resp.SuggestedDate)
}

func TestProcessPhotoExtractionFailure(t *testing.T) {
	server := ocrServer(t, ocr.Result{}, http.StatusInternalServerError)
	defer server.Close()

	store := newFakePhotoStore()
	svc := NewCaptureService(&fakeEntryService{}, store, ocr.NewClient(server.URL, 5*time.Second))

	_, err := svc.ProcessPhoto(context.Background(), testUser(), photoRequest("card.jpg"))
	assert.ErrorIs(t, err, capture.ErrExtractionFailed)

	// The orphaned photo is cleaned up after the failure
	assert.Empty(t, store.stored)
	assert.Len(t, store.deleted, 1)
}

func TestProcessPhotoRejectsBadFile(t *testing.T) {
	store := newFakePhotoStore()
	svc := NewCaptureService(&fakeEntryService{}, store, ocr.NewClient("http://localhost:0", time.Second))

	_, err := svc.ProcessPhoto(context.Background(), testUser(), photoRequest("notes.pdf"))
	assert.Error(t, err)

	_, err = svc.ProcessPhoto(context.Background(), testUser(), capture.UploadPhotoRequest{})
	assert.Error(t, err)
}

func TestConfirmWritesSinglePunch(t *testing.T) {
	store := newFakePhotoStore()
	store.stored["timecards/user-1/card.jpg"] = true
	entrySvc := &fakeEntryService{}
	svc := NewCaptureService(entrySvc, store, ocr.NewClient("http://localhost:0", time.Second))

	resp, err := svc.Confirm(context.Background(), testUser(), capture.ConfirmRequest{
		Date:          "2024-01-15",
		TimeType:      "start",
		Time:          "08:30",
		PhotoPath:     "timecards/user-1/card.jpg",
		ExtractedText: "IN 08:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "entry-1", resp.ID)
	assert.Equal(t, 1, entrySvc.punches)
	assert.Equal(t, "start", entrySvc.lastPunch.Kind)
	require.NotNil(t, entrySvc.lastPunch.PhotoPath)
	assert.Equal(t, "timecards/user-1/card.jpg", *entrySvc.lastPunch.PhotoPath)
	require.NotNil(t, entrySvc.lastPunch.ExtractedText)
	assert.Equal(t, "IN 08:30", *entrySvc.lastPunch.ExtractedText)
}

func TestConfirmMissingPhoto(t *testing.T) {
	svc := NewCaptureService(&fakeEntryService{}, newFakePhotoStore(), ocr.NewClient("http://localhost:0", time.Second))

	_, err := svc.Confirm(context.Background(), testUser(), capture.ConfirmRequest{
		Date:      "2024-01-15",
		TimeType:  "start",
		Time:      "08:30",
		PhotoPath: "timecards/user-1/missing.jpg",
	})
	assert.ErrorIs(t, err, capture.ErrPhotoNotFound)
}
