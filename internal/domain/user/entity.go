package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"     // Full access, manages accounts and task review
	RoleTeamLead Role = "team_lead" // Reviews work of assigned internees
	RoleEmployee Role = "employee"  // Regular staff member
	RoleInternee Role = "internee"  // Reports to a team lead
)

// AllRoles returns every valid role value.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleTeamLead, RoleEmployee, RoleInternee}
}

// IsValidRole reports whether r is one of the closed role set.
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleEmployee, RoleInternee:
		return true
	}
	return false
}

type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Phone          string
	IDCardNumber   string
	Role           Role
	TeamLeadID     *string
	IsActive       bool
	ProfilePicture *string
	IDCardFrontPic *string
	IDCardBackPic  *string
	CoverPhoto     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join fields for responses
	TeamLead *Summary
}

// Summary is the trimmed user shape embedded in other aggregates
// (task participants, leave owner/approver, team lead references).
type Summary struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Principal is the authenticated actor behind a request. It carries exactly
// what the authorization layer needs: identity, role and the team-lead edge.
type Principal struct {
	ID         string
	Role       Role
	TeamLeadID *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTeamLead checks if user reviews internee work
func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

// CanReview checks if user may accept or reject submitted tasks
func (u *User) CanReview() bool {
	return u.IsAdmin() || u.IsTeamLead()
}

// Principal builds the authorization principal for this user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role, TeamLeadID: u.TeamLeadID}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsTeamLead() bool {
	return p.Role == RoleTeamLead
}

// CanReview reports whether the principal may accept or reject submissions.
func (p Principal) CanReview() bool {
	return p.Role == RoleAdmin || p.Role == RoleTeamLead
}
