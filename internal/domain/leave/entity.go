package leave

import (
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Type string

const (
	TypeSick      Type = "sick"
	TypeCasual    Type = "casual"
	TypeAnnual    Type = "annual"
	TypeUnpaid    Type = "unpaid"
	TypeEmergency Type = "emergency"
)

func IsValidType(t Type) bool {
	switch t {
	case TypeSick, TypeCasual, TypeAnnual, TypeUnpaid, TypeEmergency:
		return true
	}
	return false
}

type Leave struct {
	ID              string
	UserID          string
	LeaveType       Type
	StartDate       time.Time // calendar day, inclusive
	EndDate         time.Time // calendar day, inclusive
	Reason          string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join fields for responses
	User     *user.Summary
	Approver *user.Summary
}

// Overlaps reports whether the inclusive ranges [s1,e1] and [s2,e2] intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// Approve stamps the single permitted pending transition.
func (l *Leave) Approve(approverID string, now time.Time) error {
	if l.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	l.Status = StatusApproved
	l.ApprovedBy = &approverID
	l.ApprovedAt = &now
	return nil
}

// Reject stamps the single permitted pending transition with an optional reason.
func (l *Leave) Reject(approverID string, reason *string, now time.Time) error {
	if l.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	l.Status = StatusRejected
	l.ApprovedBy = &approverID
	l.ApprovedAt = &now
	l.RejectionReason = reason
	return nil
}
