package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/response"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

type TimeEntryHandler interface {
	RecordPunch(w http.ResponseWriter, r *http.Request)
	ListOpen(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	entryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(entryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{
		entryService: entryService,
	}
}

// yearMonthFromQuery reads ?year= and ?month=, defaulting to the
// current month.
func yearMonthFromQuery(r *http.Request) (int, int, bool) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, false
		}
		month = parsed
	}
	return year, month, true
}

// entryFilterFromQuery builds the admin read filter from query params.
func entryFilterFromQuery(r *http.Request) timeentry.AdminEntryFilter {
	var filter timeentry.AdminEntryFilter

	q := r.URL.Query()
	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("confirmed_only"); v != "" {
		confirmed := v == "true" || v == "1"
		filter.ConfirmedOnly = &confirmed
	}

	return filter
}

// RecordPunch implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) RecordPunch(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timeentry.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.RecordPunch(r.Context(), usr, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// ListOpen implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListOpen(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.entryService.FindUnclosedEntries(r.Context(), usr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMonth implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.entryService.ListMonth(r.Context(), usr, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDay implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.entryService.ListDay(r.Context(), usr, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	entryID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(entryID) {
		response.BadRequest(w, "Invalid entry id", nil)
		return
	}

	var req timeentry.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.UpdateEntry(r.Context(), usr, entryID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated", result)
}

// Delete implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	entryID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(entryID) {
		response.BadRequest(w, "Invalid entry id", nil)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), usr, entryID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted", nil)
}

// ListAll implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.entryService.ListAllEntries(r.Context(), usr, entryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByUser implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.entryService.ListUserEntries(r.Context(), usr, targetUserID, entryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
