package notification

import (
	"time"
)

type Notification struct {
	ID          string
	SenderID    *string
	RecipientID string
	Message     string
	Link        *string
	IsRead      bool
	CreatedAt   time.Time

	// Join field for responses
	SenderName *string
}
