package repository

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// NotificationDatabaseAdapter implements domain.NotificationRepository using sqlx.
type NotificationDatabaseAdapter struct {
	db *sqlx.DB
}

// NewNotificationDatabaseAdapter creates a new instance of NotificationDatabaseAdapter
func NewNotificationDatabaseAdapter(db *sqlx.DB) domain.NotificationRepository {
	return &NotificationDatabaseAdapter{db: db}
}

// CreateNotification implements domain.NotificationRepository.
func (a *NotificationDatabaseAdapter) CreateNotification(ctx context.Context, n *domain.Notification) error {
	exec := getExecutor(ctx, a.db)

	if n.ID == "" {
		n.ID = util.NewULID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	query := `INSERT INTO notifications
		(id, recipient_id, notification_type, message, is_read, created_at)
	VALUES (:1, :2, :3, :4, :5, :6)`

	if _, err := exec.ExecContext(ctx, query,
		n.ID, n.RecipientID, string(n.Type), n.Message, boolToInt(n.IsRead), n.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListByRecipient implements domain.NotificationRepository.
func (a *NotificationDatabaseAdapter) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error) {
	exec := getExecutor(ctx, a.db)

	var modelNotifications []models.Notification
	query := `SELECT
		id "id",
		recipient_id "recipient_id",
		notification_type "notification_type",
		message "message",
		is_read "is_read",
		created_at "created_at"
	FROM notifications
	WHERE recipient_id = :1
	ORDER BY created_at DESC
	FETCH FIRST :2 ROWS ONLY`

	if err := exec.SelectContext(ctx, &modelNotifications, query, recipientID, limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*domain.Notification, 0, len(modelNotifications))
	for i := range modelNotifications {
		notifications = append(notifications, toDomainNotification(&modelNotifications[i]))
	}
	return notifications, nil
}

// CountUnread implements domain.NotificationRepository.
func (a *NotificationDatabaseAdapter) CountUnread(ctx context.Context, recipientID string) (int, error) {
	exec := getExecutor(ctx, a.db)

	var count int
	query := `SELECT COUNT(*) "count" FROM notifications WHERE recipient_id = :1 AND is_read = 0`
	if err := exec.GetContext(ctx, &count, query, recipientID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead implements domain.NotificationRepository. The recipient filter
// keeps users from marking someone else's notification.
func (a *NotificationDatabaseAdapter) MarkRead(ctx context.Context, id, recipientID string) error {
	exec := getExecutor(ctx, a.db)

	query := `UPDATE notifications SET is_read = 1 WHERE id = :1 AND recipient_id = :2`
	if _, err := exec.ExecContext(ctx, query, id, recipientID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func toDomainNotification(m *models.Notification) *domain.Notification {
	return &domain.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		Type:        domain.NotificationType(m.Type),
		Message:     m.Message,
		IsRead:      m.IsRead == 1,
		CreatedAt:   m.CreatedAt,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
