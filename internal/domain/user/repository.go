package user

import (
	"context"
)

// UserScope is the visibility predicate for user listings, produced by the
// scope resolver and compiled into WHERE clauses by the repository.
type UserScope struct {
	// All grants unrestricted visibility (admin).
	All bool
	// Role restricts the listing to a single role (team leads see internees only).
	Role Role
	// TeamLeadID restricts the listing to direct reports of this user.
	TeamLeadID string
	// Empty forces an empty result without touching the store (a team lead
	// filtering for any role other than internee).
	Empty bool
}

// UserRepository defines data access methods for user records.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ExistsUnique reports which of the unique fields are already taken.
	ExistsUnique(ctx context.Context, email, phone, idCardNumber string) (emailTaken, phoneTaken, idCardTaken bool, err error)

	// List retrieves users inside the given visibility scope with filters and
	// pagination, including each user's team lead summary.
	List(ctx context.Context, sc UserScope, filter ListFilter) ([]User, int64, error)

	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListInternees(ctx context.Context, teamLeadID *string) ([]User, error)

	Update(ctx context.Context, u User) error
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateRole(ctx context.Context, id string, role Role, teamLeadID *string) error
	Delete(ctx context.Context, id string) error

	// HasDependentRecords reports whether any task, leave or attendance row
	// still references the user. Used to enforce restrict-on-delete.
	HasDependentRecords(ctx context.Context, id string) (bool, error)

	CountByRole(ctx context.Context, role Role) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountInternees(ctx context.Context, teamLeadID string, activeOnly bool) (int64, error)
}
