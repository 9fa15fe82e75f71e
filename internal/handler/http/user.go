package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/response"
	"github.com/tempohq/tempo-backend-go/internal/pkg/validator"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	MyPermissions(w http.ResponseWriter, r *http.Request)
	UserPermissions(w http.ResponseWriter, r *http.Request)
	Roles(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.userService.Me(r.Context(), usr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateProfile implements UserHandler.
func (h *userHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.UpdateProfile(r.Context(), usr, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.userService.List(r.Context(), usr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateRole implements UserHandler.
func (h *userHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
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

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.UpdateRole(r.Context(), usr, targetUserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated", result)
}

// MyPermissions implements UserHandler.
func (h *userHandlerImpl) MyPermissions(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	response.Success(w, h.userService.MyPermissions(usr))
}

// UserPermissions implements UserHandler.
func (h *userHandlerImpl) UserPermissions(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.userService.UserPermissions(r.Context(), usr, targetUserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Roles implements UserHandler.
func (h *userHandlerImpl) Roles(w http.ResponseWriter, r *http.Request) {
	usr, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.userService.AssignableRoles(usr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
