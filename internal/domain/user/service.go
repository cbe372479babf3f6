package user

import (
	"context"
)

type UserService interface {
	// Register creates a user atomically with its welcome notification and
	// email. If the welcome dispatch fails, the whole registration rolls back.
	Register(ctx context.Context, actor Principal, req RegisterRequest) (Response, string, error)

	List(ctx context.Context, actor Principal, filter ListFilter) (ListResponse, error)
	Get(ctx context.Context, actor Principal, id string) (Response, error)
	UpdateProfile(ctx context.Context, actor Principal, id string, req UpdateProfileRequest) (Response, error)
	ListTeamLeads(ctx context.Context) ([]Response, error)
	ListInternees(ctx context.Context, actor Principal, teamLeadID *string) ([]Response, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) error
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) error
	Delete(ctx context.Context, id string) error
	DashboardStats(ctx context.Context, actor Principal) (DashboardStats, error)
}
