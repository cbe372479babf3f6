package notification

import "time"

type Response struct {
	ID         string    `json:"id"`
	SenderID   *string   `json:"sender_id,omitempty"`
	SenderName *string   `json:"sender_name,omitempty"`
	Message    string    `json:"message"`
	Link       *string   `json:"link,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToResponse(n Notification) Response {
	return Response{
		ID:         n.ID,
		SenderID:   n.SenderID,
		SenderName: n.SenderName,
		Message:    n.Message,
		Link:       n.Link,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

type ListResponse struct {
	Notifications []Response `json:"notifications"`
	UnreadCount   int64      `json:"unread_count"`
}
