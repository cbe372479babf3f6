package leave

import (
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

type CreateRequest struct {
	LeaveType Type   `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

// Validate checks the shape of the request and, against today, the temporal
// rules: startDate not in the past, endDate not before startDate. It returns
// the parsed dates so the service does not reparse.
func (r *CreateRequest) Validate(today time.Time) (start, end time.Time, err error) {
	var errs validator.ValidationErrors

	if !IsValidType(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of sick, casual, annual, unpaid, emergency"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if okStart && start.Before(today) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date cannot be in the past"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date cannot be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type UpdateStatusRequest struct {
	Status          Status  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r.Status != StatusApproved && r.Status != StatusRejected {
		return validator.ValidationErrors{{Field: "status", Message: "status must be approved or rejected"}}
	}
	return nil
}

// ListFilter narrows a leave listing; all fields are optional.
type ListFilter struct {
	Status    Status
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

type Response struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	LeaveType       Type          `json:"leave_type"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Reason          string        `json:"reason"`
	Status          Status        `json:"status"`
	ApprovedBy      *string       `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	User            *user.Summary `json:"user,omitempty"`
	Approver        *user.Summary `json:"approver,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func ToResponse(l Leave) Response {
	return Response{
		ID:              l.ID,
		UserID:          l.UserID,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		Reason:          l.Reason,
		Status:          l.Status,
		ApprovedBy:      l.ApprovedBy,
		ApprovedAt:      l.ApprovedAt,
		RejectionReason: l.RejectionReason,
		User:            l.User,
		Approver:        l.Approver,
		CreatedAt:       l.CreatedAt,
	}
}
