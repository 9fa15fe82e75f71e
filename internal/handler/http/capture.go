package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tempohq/tempo-backend-go/internal/domain/capture"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/response"
)

type CaptureHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type captureHandlerImpl struct {
	captureService capture.CaptureService
}

func NewCaptureHandler(captureService capture.CaptureService) CaptureHandler {
	return &captureHandlerImpl{
		captureService: captureService,
	}
}

// Upload implements CaptureHandler.
func (h *captureHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Time card photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := capture.UploadPhotoRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	result, err := h.captureService.ProcessPhoto(r.Context(), usr, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Photo processed", result)
}

// Confirm implements CaptureHandler.
func (h *captureHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req capture.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.captureService.Confirm(r.Context(), usr, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded from photo", result)
}
