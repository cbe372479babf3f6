package notification

import (
	"context"
)

// NotificationRepository defines data access for the notification sink.
// Workflow engines write rows through Create/CreateBatch, usually inside the
// transaction of the operation that produced them.
type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	CreateBatch(ctx context.Context, ns []Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, int64, error)
	MarkAsRead(ctx context.Context, id string, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
