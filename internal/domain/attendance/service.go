package attendance

import (
	"context"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, actor user.Principal) (Response, error)
	CheckOut(ctx context.Context, actor user.Principal) (Response, error)
	UpdateBreak(ctx context.Context, actor user.Principal, req UpdateBreakRequest) (Response, error)
	ListByUser(ctx context.Context, actor user.Principal, userID string, filter ListFilter) ([]Response, error)
	ListByDate(ctx context.Context, actor user.Principal, date string) ([]Response, error)
	List(ctx context.Context, actor user.Principal, filter ListFilter) ([]Response, error)
}
