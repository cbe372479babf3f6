package leave

import (
	"context"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type LeaveService interface {
	Create(ctx context.Context, actor user.Principal, req CreateRequest) (Response, error)
	ListByUser(ctx context.Context, actor user.Principal, userID string) ([]Response, error)
	List(ctx context.Context, actor user.Principal, filter ListFilter) ([]Response, error)
	UpdateStatus(ctx context.Context, actor user.Principal, id string, req UpdateStatusRequest) (Response, error)
	Delete(ctx context.Context, actor user.Principal, id string) error
}
