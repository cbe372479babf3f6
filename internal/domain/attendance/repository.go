package attendance

import (
	"context"
)

// AttendanceScope is the visibility predicate for attendance listings.
type AttendanceScope struct {
	All     bool
	OwnerID string
}

func (s AttendanceScope) Allows(ownerID string) bool {
	return s.All || (s.OwnerID != "" && ownerID == s.OwnerID)
}

// AttendanceRepository defines data access methods for the ledger. The
// per-user-per-day uniqueness is enforced by the store's constraint; Create
// surfaces a violation as ErrAlreadyCheckedIn.
type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByUserAndDate(ctx context.Context, userID string, date string) (Attendance, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Attendance, error)
	ListByDate(ctx context.Context, date string) ([]Attendance, error)
	List(ctx context.Context, sc AttendanceScope, filter ListFilter) ([]Attendance, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
}
