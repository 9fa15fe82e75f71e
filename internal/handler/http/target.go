package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/response"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

type TargetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Progress(w http.ResponseWriter, r *http.Request)
	CurrentProgress(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type targetHandlerImpl struct {
	targetService target.TargetService
}

func NewTargetHandler(targetService target.TargetService) TargetHandler {
	return &targetHandlerImpl{
		targetService: targetService,
	}
}

// Create implements TargetHandler.
func (h *targetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req target.CreateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.targetService.Create(r.Context(), usr, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Target created", result)
}

// List implements TargetHandler.
func (h *targetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.targetService.List(r.Context(), usr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Progress implements TargetHandler.
func (h *targetHandlerImpl) Progress(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, month, ok := yearMonthFromQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid year or month", nil)
		return
	}

	result, err := h.targetService.Progress(r.Context(), usr, year, month)
	if err != nil {
		// A month without a target is a normal state, not a failure.
		if errors.Is(err, target.ErrNoTargetSet) {
			response.SuccessWithMessage(w, "No target set for this month", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CurrentProgress implements TargetHandler.
func (h *targetHandlerImpl) CurrentProgress(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.targetService.CurrentProgress(r.Context(), usr)
	if err != nil {
		if errors.Is(err, target.ErrNoTargetSet) {
			response.SuccessWithMessage(w, "No target set for this month", nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements TargetHandler.
func (h *targetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	targetID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(targetID) {
		response.BadRequest(w, "Invalid target id", nil)
		return
	}

	var req target.UpdateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.targetService.Update(r.Context(), usr, targetID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Target updated", result)
}

// Delete implements TargetHandler.
func (h *targetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	targetID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(targetID) {
		response.BadRequest(w, "Invalid target id", nil)
		return
	}

	if err := h.targetService.Delete(r.Context(), usr, targetID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Target deleted", nil)
}
