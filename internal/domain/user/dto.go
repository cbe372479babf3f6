package user

import (
	"mime/multipart"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

type RegisterRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Phone        string  `json:"phone"`
	IDCardNumber string  `json:"id_card_number"`
	Role         Role    `json:"role"`
	TeamLeadID   *string `json:"team_lead_id,omitempty"`

	// Uploaded documents, attached by the handler
	ProfilePicture *multipart.FileHeader `json:"-"`
	IDCardFrontPic *multipart.FileHeader `json:"-"`
	IDCardBackPic  *multipart.FileHeader `json:"-"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	} else if len(r.FirstName) < 2 || len(r.FirstName) > 50 {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must be between 2 and 50 characters"})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	} else if len(r.LastName) < 2 || len(r.LastName) > 50 {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must be between 2 and 50 characters"})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}

	if len(r.Password) < 6 || len(r.Password) > 100 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be between 6 and 100 characters"})
	}

	if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}

	if !validator.IsValidIDCardNumber(r.IDCardNumber) {
		errs = append(errs, validator.ValidationError{Field: "id_card_number", Message: "id_card_number must be 5-20 digits, dashes allowed"})
	}

	if r.Role == "" {
		r.Role = RoleInternee
	}
	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of admin, team_lead, employee, internee"})
	}

	if r.Role == RoleInternee && (r.TeamLeadID == nil || validator.IsEmpty(*r.TeamLeadID)) {
		errs = append(errs, validator.ValidationError{Field: "team_lead_id", Message: "team_lead_id is required for internees"})
	}
	if r.Role != RoleInternee && r.TeamLeadID != nil {
		errs = append(errs, validator.ValidationError{Field: "team_lead_id", Message: "team_lead_id is only allowed for internees"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	IDCardNumber *string `json:"id_card_number,omitempty"`
	Password     *string `json:"password,omitempty"`

	ProfilePicture *multipart.FileHeader `json:"-"`
	CoverPhoto     *multipart.FileHeader `json:"-"`
	IDCardFrontPic *multipart.FileHeader `json:"-"`
	IDCardBackPic  *multipart.FileHeader `json:"-"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && (len(*r.FirstName) < 2 || len(*r.FirstName) > 50) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must be between 2 and 50 characters"})
	}
	if r.LastName != nil && (len(*r.LastName) < 2 || len(*r.LastName) > 50) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must be between 2 and 50 characters"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}
	if r.IDCardNumber != nil && !validator.IsValidIDCardNumber(*r.IDCardNumber) {
		errs = append(errs, validator.ValidationError{Field: "id_card_number", Message: "id_card_number must be 5-20 digits, dashes allowed"})
	}
	if r.Password != nil && (len(*r.Password) < 6 || len(*r.Password) > 100) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be between 6 and 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type UpdateRoleRequest struct {
	Role       Role    `json:"role"`
	TeamLeadID *string `json:"team_lead_id,omitempty"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of admin, team_lead, employee, internee"})
	}
	if r.Role == RoleInternee && (r.TeamLeadID == nil || validator.IsEmpty(*r.TeamLeadID)) {
		errs = append(errs, validator.ValidationError{Field: "team_lead_id", Message: "team_lead_id is required for internees"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows the user listing. Role and status filters are applied on
// top of the principal's visibility scope.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
	Role   Role
	Status string // "active" | "inactive" | ""
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

type Response struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	IDCardNumber   string    `json:"id_card_number"`
	Role           Role      `json:"role"`
	TeamLeadID     *string   `json:"team_lead_id,omitempty"`
	TeamLead       *Summary  `json:"team_lead,omitempty"`
	IsActive       bool      `json:"is_active"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CoverPhoto     *string   `json:"cover_photo,omitempty"`
	IDCardFrontPic *string   `json:"id_card_front_pic,omitempty"`
	IDCardBackPic  *string   `json:"id_card_back_pic,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToResponse(u User) Response {
	return Response{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Phone:          u.Phone,
		IDCardNumber:   u.IDCardNumber,
		Role:           u.Role,
		TeamLeadID:     u.TeamLeadID,
		TeamLead:       u.TeamLead,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		CoverPhoto:     u.CoverPhoto,
		IDCardFrontPic: u.IDCardFrontPic,
		IDCardBackPic:  u.IDCardBackPic,
		CreatedAt:      u.CreatedAt,
	}
}

type ListResponse struct {
	Users      []Response `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

// DashboardStats is shaped by the requesting role; unused counters stay nil.
type DashboardStats struct {
	TotalUsers      *int64 `json:"total_users,omitempty"`
	TotalInternees  *int64 `json:"total_internees,omitempty"`
	ActiveInternees *int64 `json:"active_internees,omitempty"`
	TotalTeamLeads  *int64 `json:"total_team_leads,omitempty"`
	TotalEmployees  *int64 `json:"total_employees,omitempty"`
	TotalTasks      *int64 `json:"total_tasks,omitempty"`
	PendingTasks    *int64 `json:"pending_tasks,omitempty"`
	CompletedTasks  *int64 `json:"completed_tasks,omitempty"`
	RejectedTasks   *int64 `json:"rejected_tasks,omitempty"`
}
