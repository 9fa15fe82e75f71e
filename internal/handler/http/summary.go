package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempohq/tempo-backend-go/internal/domain/summary"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/response"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

type SummaryHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	UserOverview(w http.ResponseWriter, r *http.Request)
	AllUsersOverview(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// Daily implements SummaryHandler.
func (h *summaryHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.summaryService.Daily(r.Context(), usr, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements SummaryHandler.
func (h *summaryHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.summaryService.Monthly(r.Context(), usr, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UserOverview implements SummaryHandler.
func (h *summaryHandlerImpl) UserOverview(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	targetUserID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(targetUserID) {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	year, month, ok := yearMonthFromQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid year or month", nil)
		return
	}

	result, err := h.summaryService.UserOverview(r.Context(), usr, targetUserID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AllUsersOverview implements SummaryHandler.
func (h *summaryHandlerImpl) AllUsersOverview(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.summaryService.AllUsersOverview(r.Context(), usr, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
