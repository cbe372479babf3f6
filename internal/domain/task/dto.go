package task

import (
	"mime/multipart"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
)

type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeID  string   `json:"assignee_id"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"due_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	} else if len(r.Title) < 3 || len(r.Title) > 200 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must be between 3 and 200 characters"})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}

	if validator.IsEmpty(r.AssigneeID) {
		errs = append(errs, validator.ValidationError{Field: "assignee_id", Message: "assignee_id is required"})
	}

	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !IsValidPriority(r.Priority) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "priority must be one of low, medium, high, urgent"})
	}

	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "due_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitRequest struct {
	Notes *string `json:"submission_notes,omitempty"`

	// Optional submission file, attached by the handler
	File *multipart.FileHeader `json:"-"`
}

type ReviewRequest struct {
	Feedback *string `json:"feedback,omitempty"`
}

type OverrideStatusRequest struct {
	Status Status `json:"status"`
}

func (r *OverrideStatusRequest) Validate() error {
	if !IsValidStatus(r.Status) {
		return validator.ValidationErrors{{Field: "status", Message: "status must be one of assigned, submitted, accepted, rejected"}}
	}
	return nil
}

// ListFilter narrows a task listing; all fields are optional.
type ListFilter struct {
	Page     int
	Limit    int
	Search   string // case-insensitive substring match over title
	Status   Status
	Priority Priority
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
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Status          Status        `json:"status"`
	Priority        Priority      `json:"priority"`
	DueDate         *time.Time    `json:"due_date,omitempty"`
	AssignerID      string        `json:"assigner_id"`
	AssigneeID      string        `json:"assignee_id"`
	Assigner        *user.Summary `json:"assigner,omitempty"`
	Assignee        *user.Summary `json:"assignee,omitempty"`
	SubmissionFile  *string       `json:"submission_file,omitempty"`
	SubmissionNotes *string       `json:"submission_notes,omitempty"`
	SubmittedAt     *time.Time    `json:"submitted_at,omitempty"`
	Feedback        *string       `json:"feedback,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func ToResponse(t Task) Response {
	return Response{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status,
		Priority:        t.Priority,
		DueDate:         t.DueDate,
		AssignerID:      t.AssignerID,
		AssigneeID:      t.AssigneeID,
		Assigner:        t.Assigner,
		Assignee:        t.Assignee,
		SubmissionFile:  t.SubmissionFile,
		SubmissionNotes: t.SubmissionNotes,
		SubmittedAt:     t.SubmittedAt,
		Feedback:        t.Feedback,
		CreatedAt:       t.CreatedAt,
	}
}

type ListResponse struct {
	Tasks      []Response `json:"tasks"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
