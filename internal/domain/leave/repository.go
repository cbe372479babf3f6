package leave

import (
	"context"
)

// LeaveScope is the visibility predicate for leave listings. Team leads carry
// the same unrestricted breadth as admins here, matching how the approval
// queue is shared between both roles.
type LeaveScope struct {
	All     bool
	OwnerID string
}

// Allows applies the predicate to a single loaded row.
func (s LeaveScope) Allows(ownerID string) bool {
	return s.All || (s.OwnerID != "" && ownerID == s.OwnerID)
}

// LeaveRepository defines data access methods for leave requests. Reads join
// the owner and approver summaries explicitly.
type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	ListByUser(ctx context.Context, userID string) ([]Leave, error)
	List(ctx context.Context, sc LeaveScope, filter ListFilter) ([]Leave, error)

	// HasOverlapping reports whether the user already holds a pending or
	// approved leave intersecting the inclusive [start, end] range.
	HasOverlapping(ctx context.Context, userID string, start, end string) (bool, error)

	// Update persists a review verdict. The write only lands while the row
	// is still pending; a row already processed by another reviewer yields
	// ErrAlreadyProcessed.
	Update(ctx context.Context, l Leave) (Leave, error)

	Delete(ctx context.Context, id string) error
}
