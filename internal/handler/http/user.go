package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/middleware"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/response"
)

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ListTeamLeads(w http.ResponseWriter, r *http.Request)
	ListInternees(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DashboardStats(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

func (h *UserHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req, err := decodeRegister(r)
	if err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, token, err := h.userService.Register(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User registered successfully", map[string]interface{}{
		"user":  created,
		"token": token,
	})
}

func decodeRegister(r *http.Request) (user.RegisterRequest, error) {
	var req user.RegisterRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return req, err
		}
		req.FirstName = r.FormValue("first_name")
		req.LastName = r.FormValue("last_name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		req.Phone = r.FormValue("phone")
		req.IDCardNumber = r.FormValue("id_card_number")
		req.Role = user.Role(r.FormValue("role"))
		if v := r.FormValue("team_lead_id"); v != "" {
			req.TeamLeadID = &v
		}
		req.ProfilePicture = formFile(r, "profile_picture")
		req.IDCardFrontPic = formFile(r, "id_card_front_pic")
		req.IDCardBackPic = formFile(r, "id_card_back_pic")
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	filter := user.ListFilter{
		Page:   page,
		Limit:  limit,
		Search: query.Get("search"),
		Role:   user.Role(query.Get("role")),
		Status: query.Get("status"),
	}

	result, err := h.userService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Users, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: result.TotalPages,
	})
}

func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	u, err := h.userService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}

func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	req, err := decodeProfileUpdate(r)
	if err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

func (h *UserHandlerImpl) ListTeamLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.userService.ListTeamLeads(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leads)
}

func (h *UserHandlerImpl) ListInternees(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var teamLeadID *string
	if v := r.URL.Query().Get("team_lead_id"); v != "" {
		teamLeadID = &v
	}

	internees, err := h.userService.ListInternees(r.Context(), actor, teamLeadID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, internees)
}

func (h *UserHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req user.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.UpdateStatus(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User status updated successfully", nil)
}

func (h *UserHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.UpdateRole(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User role updated successfully", nil)
}

func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

func (h *UserHandlerImpl) DashboardStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	stats, err := h.userService.DashboardStats(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
