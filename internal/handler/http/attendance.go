package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/attendance"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/middleware"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	UpdateBreak(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByUser(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

func (h *AttendanceHandlerImpl) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.UpdateBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.UpdateBreak(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break time updated successfully", record)
}

func attendanceFilterFromQuery(r *http.Request) attendance.ListFilter {
	query := r.URL.Query()
	filter := attendance.ListFilter{
		UserID: query.Get("user_id"),
	}
	if v := query.Get("start_date"); v != "" {
		if start, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &start
		}
	}
	if v := query.Get("end_date"); v != "" {
		if end, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &end
		}
	}
	return filter
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	records, err := h.attendanceService.List(r.Context(), actor, attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) ListByUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "userId")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	records, err := h.attendanceService.ListByUser(r.Context(), actor, userID, attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListByDate(r.Context(), actor, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
