package notification

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// NotificationHandler handles notification-related API endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications handles GET /api/v1/notifications/:user_id
// Returns all notifications of the user together with the unread count
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	requested, err := utils.ParseID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := utils.TargetUser(c, requested)
	if err != nil {
		return response.FromError(c, err)
	}

	notifications, err := h.notificationService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	responseData := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responseData = append(responseData, notifications[i].ToResponse())
	}

	unreadCount, err := h.notificationService.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, fiber.Map{
		"notifications": responseData,
		"unread_count":  unreadCount,
	})
}

// MarkAsRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	notification, err := h.notificationService.MarkRead(c.UserContext(), user, id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Notification marked as read", notification.ToResponse())
}

// MarkAllAsRead handles POST /api/v1/notifications/:user_id/read-all
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	requested, err := utils.ParseID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := utils.TargetUser(c, requested)
	if err != nil {
		return response.FromError(c, err)
	}

	count, err := h.notificationService.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "All notifications marked as read", fiber.Map{"updated": count})
}

// CreateNotification handles POST /api/v1/admin/notifications
func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var req services.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 || req.Message == "" {
		return response.BadRequest(c, "user_id and message are required")
	}

	notification, err := h.notificationService.CreateNotification(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Notification created", notification.ToResponse())
}
