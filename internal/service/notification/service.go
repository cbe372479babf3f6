package notification

import (
	"context"

	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
)

type notificationServiceImpl struct {
	notificationRepo notification.NotificationRepository
}

func NewNotificationService(notificationRepo notification.NotificationRepository) notification.NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *notificationServiceImpl) Notify(ctx context.Context, intent notification.Intent) error {
	_, err := s.notificationRepo.Create(ctx, notification.Notification{
		SenderID:    intent.SenderID,
		RecipientID: intent.RecipientID,
		Message:     intent.Message,
		Link:        intent.Link,
	})
	return err
}

func (s *notificationServiceImpl) NotifyMany(ctx context.Context, intents []notification.Intent) error {
	if len(intents) == 0 {
		return nil
	}
	ns := make([]notification.Notification, 0, len(intents))
	for _, intent := range intents {
		ns = append(ns, notification.Notification{
			SenderID:    intent.SenderID,
			RecipientID: intent.RecipientID,
			Message:     intent.Message,
			Link:        intent.Link,
		})
	}
	return s.notificationRepo.CreateBatch(ctx, ns)
}

func (s *notificationServiceImpl) List(ctx context.Context, recipientID string) (notification.ListResponse, error) {
	ns, unread, err := s.notificationRepo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return notification.ListResponse{}, err
	}

	responses := make([]notification.Response, 0, len(ns))
	for _, n := range ns {
		responses = append(responses, notification.ToResponse(n))
	}
	return notification.ListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, recipientID string, id string) error {
	return s.notificationRepo.MarkAsRead(ctx, id, recipientID)
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, recipientID)
}
