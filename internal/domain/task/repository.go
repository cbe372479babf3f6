package task

import (
	"context"
)

// TaskScope is the visibility predicate for tasks, produced by the scope
// resolver. The repository compiles it into a WHERE clause; Allows applies
// the same predicate to a single loaded row.
type TaskScope struct {
	// All grants unrestricted visibility (admin).
	All bool
	// AssigneeID matches rows assigned to this user.
	AssigneeID string
	// AssignerID additionally matches rows created by this user (team lead).
	AssignerID string
	// TeamLeadID additionally matches rows whose assignee reports to this
	// team lead.
	TeamLeadID string
}

// Allows reports whether a task with the given participants is inside the
// scope. assigneeTeamLeadID is the team-lead edge of the task's assignee.
func (s TaskScope) Allows(assignerID, assigneeID string, assigneeTeamLeadID *string) bool {
	if s.All {
		return true
	}
	if s.AssigneeID != "" && assigneeID == s.AssigneeID {
		return true
	}
	if s.AssignerID != "" && assignerID == s.AssignerID {
		return true
	}
	if s.TeamLeadID != "" && assigneeTeamLeadID != nil && *assigneeTeamLeadID == s.TeamLeadID {
		return true
	}
	return false
}

// TaskRepository defines data access methods for task records. GetByID loads
// the task together with its participants (assigner and assignee summaries
// plus the assignee's team-lead edge) via explicit joins so authorization can
// be decided without extra round trips.
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, sc TaskScope, filter ListFilter) ([]Task, int64, error)

	// Update persists the task's mutable fields. When from statuses are
	// given the write only lands if the stored row is still in one of
	// them, so a concurrent transition loses with ErrTaskNotFound instead
	// of silently overwriting.
	Update(ctx context.Context, t Task, from ...Status) (Task, error)

	Delete(ctx context.Context, id string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	CountByAssignee(ctx context.Context, assigneeID string, status *Status) (int64, error)
	CountByTeamLead(ctx context.Context, teamLeadID string, status *Status) (int64, error)
}
