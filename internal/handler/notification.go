package handler

import (
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user identity is required")
	}

	notifications, err := h.service.ListNotifications(c.UserContext(), userID, c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user identity is required")
	}

	count, err := h.service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.UnreadCountResponse{Count: count})
}

// MarkRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user identity is required")
	}

	if err := h.service.MarkRead(c.UserContext(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
