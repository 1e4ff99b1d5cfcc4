package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("ListByRecipient", mock.Anything, "user-1", 50).
		Return([]*domain.Notification{
			{
				ID:          "n-1",
				RecipientID: "user-1",
				Type:        domain.NotificationQuizCompleted,
				Message:     "Someone completed your quiz: Python Loops Quiz",
				CreatedAt:   time.Now(),
			},
		}, nil).Once()

	svc := NewNotificationService(repo)
	notifications, err := svc.ListNotifications(context.Background(), "user-1", 0)

	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "quiz_completed", notifications[0].Type)
	assert.False(t, notifications[0].IsRead)
	repo.AssertExpectations(t)
}

func TestUnreadCount(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("CountUnread", mock.Anything, "user-1").Return(3, nil).Once()

	svc := NewNotificationService(repo)
	count, err := svc.UnreadCount(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMarkRead_RepositoryError(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("MarkRead", mock.Anything, "n-1", "user-1").
		Return(errors.New("connection lost")).Once()

	svc := NewNotificationService(repo)
	err := svc.MarkRead(context.Background(), "n-1", "user-1")

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}
