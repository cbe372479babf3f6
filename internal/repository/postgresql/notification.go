package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

const notificationSelectWithSender = `
	SELECT n.id, n.sender_id, n.recipient_id, n.message, n.link, n.is_read, n.created_at,
		   CASE WHEN s.id IS NULL THEN NULL ELSE s.first_name || ' ' || s.last_name END
	FROM notifications n
	LEFT JOIN users s ON n.sender_id = s.id
`

func scanNotificationWithSender(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(
		&n.ID, &n.SenderID, &n.RecipientID, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt,
		&n.SenderName,
	)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, sender_id, recipient_id, message, link, is_read, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, n.SenderID, n.RecipientID, n.Message, n.Link).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, sender_id, recipient_id, message, link, is_read, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, FALSE, NOW())
	`
	for _, n := range ns {
		batch.Queue(query, n.SenderID, n.RecipientID, n.Message, n.Link)
	}
	return q.SendBatch(ctx, batch).Close()
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		notificationSelectWithSender+` WHERE n.recipient_id = $1 ORDER BY n.created_at DESC LIMIT 100`, recipientID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ns []notification.Notification
	for rows.Next() {
		n, err := scanNotificationWithSender(rows)
		if err != nil {
			return nil, 0, err
		}
		ns = append(ns, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int64
	err = q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID).Scan(&unread)
	if err != nil {
		return nil, 0, err
	}
	return ns, unread, nil
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, id string, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	return err
}
