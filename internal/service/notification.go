package service

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
)

// NotificationService defines notification retrieval operations.
type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, limit int) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type notificationService struct {
	repo domain.NotificationRepository
}

// NewNotificationService creates a new instance of notificationService
func NewNotificationService(repo domain.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// ListNotifications implements NotificationService
func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.repo.ListByRecipient(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list notifications", err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

// UnreadCount implements NotificationService
func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, domain.NewInternalError("Failed to count unread notifications", err)
	}
	return count, nil
}

// MarkRead implements NotificationService
func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return domain.NewInternalError("Failed to mark notification read", err)
	}
	return nil
}
