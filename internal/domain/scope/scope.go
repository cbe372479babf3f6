// Package scope is the visibility resolver: the single place where a
// principal's role is turned into the set of record owners it may query or
// act upon. Every listing and get-by-id in the workflow services goes through
// a scope produced here, so the narrowing rules cannot diverge per endpoint.
package scope

import (
	"github.com/udev-hq/intern-portal-backend/internal/domain/attendance"
	"github.com/udev-hq/intern-portal-backend/internal/domain/leave"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

// ForTask resolves task visibility. Admins see everything; team leads see
// tasks they created, tasks assigned to them, and tasks assigned to their
// internees; everyone else sees only tasks assigned to them.
func ForTask(p user.Principal) task.TaskScope {
	switch p.Role {
	case user.RoleAdmin:
		return task.TaskScope{All: true}
	case user.RoleTeamLead:
		return task.TaskScope{AssigneeID: p.ID, AssignerID: p.ID, TeamLeadID: p.ID}
	default:
		return task.TaskScope{AssigneeID: p.ID}
	}
}

// ForOwnTasks resolves the my-tasks listing: always assignee-only, regardless
// of role.
func ForOwnTasks(p user.Principal) task.TaskScope {
	return task.TaskScope{AssigneeID: p.ID}
}

// ForUserList resolves user-listing visibility. Admins list anyone, with an
// optional role filter. Team leads list only their own internees; a role
// filter requesting anything else yields an empty result, not an error. Other
// roles may not list users at all.
func ForUserList(p user.Principal, roleFilter user.Role) (user.UserScope, error) {
	switch p.Role {
	case user.RoleAdmin:
		return user.UserScope{All: true, Role: roleFilter}, nil
	case user.RoleTeamLead:
		if roleFilter != "" && roleFilter != user.RoleInternee {
			return user.UserScope{Empty: true}, nil
		}
		return user.UserScope{Role: user.RoleInternee, TeamLeadID: p.ID}, nil
	default:
		return user.UserScope{}, user.ErrAccessDenied
	}
}

// ForLeave resolves leave visibility. Team leads share the admin's
// system-wide breadth here; the approval queue is not partitioned by team.
func ForLeave(p user.Principal) leave.LeaveScope {
	switch p.Role {
	case user.RoleAdmin, user.RoleTeamLead:
		return leave.LeaveScope{All: true}
	default:
		return leave.LeaveScope{OwnerID: p.ID}
	}
}

// ForAttendance resolves attendance visibility.
func ForAttendance(p user.Principal) attendance.AttendanceScope {
	switch p.Role {
	case user.RoleAdmin, user.RoleTeamLead:
		return attendance.AttendanceScope{All: true}
	default:
		return attendance.AttendanceScope{OwnerID: p.ID}
	}
}
