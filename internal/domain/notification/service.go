package notification

import (
	"context"
)

// Intent is a notification the workflow engines decided to emit. Notify runs
// inside the caller's transaction when a transactional context is present.
type Intent struct {
	SenderID    *string
	RecipientID string
	Message     string
	Link        *string
}

type NotificationService interface {
	Notify(ctx context.Context, intent Intent) error
	NotifyMany(ctx context.Context, intents []Intent) error

	List(ctx context.Context, recipientID string) (ListResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, id string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
