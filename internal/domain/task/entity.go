package task

import (
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type Status string

const (
	StatusAssigned  Status = "assigned"
	StatusSubmitted Status = "submitted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// IsValidStatus reports whether s is one of the closed status set.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusAssigned, StatusSubmitted, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID              string
	Title           string
	Description     string
	Status          Status
	Priority        Priority
	DueDate         *time.Time
	AssignerID      string
	AssigneeID      string
	SubmissionFile  *string
	SubmissionNotes *string
	SubmittedAt     *time.Time
	Feedback        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join fields for responses
	Assigner           *user.Summary
	Assignee           *user.Summary
	AssigneeTeamLeadID *string
}

// CanSubmit reports whether actorID may submit the task in its current
// state. A task is submittable from assigned, or again after rejection.
func (t *Task) CanSubmit(actorID string) error {
	if t.AssigneeID != actorID {
		return ErrNotAssignee
	}
	if t.Status != StatusAssigned && t.Status != StatusRejected {
		return ErrNotSubmittable
	}
	return nil
}

// Submit transitions the task to submitted on behalf of actorID. Each
// submission overwrites the previous submission fields.
func (t *Task) Submit(actorID string, notes *string, fileRef *string, now time.Time) error {
	if err := t.CanSubmit(actorID); err != nil {
		return err
	}
	t.Status = StatusSubmitted
	t.SubmissionNotes = notes
	t.SubmissionFile = fileRef
	t.SubmittedAt = &now
	return nil
}

// Accept transitions a submitted task to accepted with optional feedback.
func (t *Task) Accept(feedback *string) error {
	if t.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	t.Status = StatusAccepted
	t.Feedback = feedback
	return nil
}

// Reject transitions a submitted task to rejected with optional feedback.
func (t *Task) Reject(feedback *string) error {
	if t.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	t.Status = StatusRejected
	t.Feedback = feedback
	return nil
}

// OverrideStatus is the administrative correction path. It bypasses the
// transition preconditions and only validates the target value.
func (t *Task) OverrideStatus(status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	t.Status = status
	return nil
}
