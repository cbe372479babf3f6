package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/udev-hq/intern-portal-backend/internal/domain/auth"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/middleware"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", resp)
}

func (h *AuthHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Refresh decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.Refresh(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Token refreshed", resp)
}

func (h *AuthHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.authService.GetProfile(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

func (h *AuthHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req, err := decodeProfileUpdate(r)
	if err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := h.authService.UpdateProfile(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}

// decodeProfileUpdate accepts either a JSON body or a multipart form carrying
// picture uploads alongside the text fields.
func decodeProfileUpdate(r *http.Request) (user.UpdateProfileRequest, error) {
	var req user.UpdateProfileRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return req, err
		}
		req.FirstName = formValue(r, "first_name")
		req.LastName = formValue(r, "last_name")
		req.Phone = formValue(r, "phone")
		req.IDCardNumber = formValue(r, "id_card_number")
		req.Password = formValue(r, "password")
		req.ProfilePicture = formFile(r, "profile_picture")
		req.CoverPhoto = formFile(r, "cover_photo")
		req.IDCardFrontPic = formFile(r, "id_card_front_pic")
		req.IDCardBackPic = formFile(r, "id_card_back_pic")
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}
