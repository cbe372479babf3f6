package task

import (
	"context"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type TaskService interface {
	Create(ctx context.Context, actor user.Principal, req CreateRequest) (Response, error)
	List(ctx context.Context, actor user.Principal, filter ListFilter) (ListResponse, error)
	ListMine(ctx context.Context, actor user.Principal, filter ListFilter) (ListResponse, error)
	Get(ctx context.Context, actor user.Principal, id string) (Response, error)
	Submit(ctx context.Context, actor user.Principal, id string, req SubmitRequest) (Response, error)
	Accept(ctx context.Context, actor user.Principal, id string, req ReviewRequest) (Response, error)
	Reject(ctx context.Context, actor user.Principal, id string, req ReviewRequest) (Response, error)
	OverrideStatus(ctx context.Context, actor user.Principal, id string, req OverrideStatusRequest) (Response, error)
	Delete(ctx context.Context, actor user.Principal, id string) error
}
