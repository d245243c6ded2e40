package subscription

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// SubscriptionHandler handles subscription requests
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// CreateSubscription handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	var req services.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, err := utils.TargetUser(c, req.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	req.UserID = userID

	sub, err := h.subscriptionService.Create(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Subscription created successfully", sub)
}

// ListSubscriptions handles GET /api/v1/subscriptions/:user_id
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	requested, err := utils.ParseID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := utils.TargetUser(c, requested)
	if err != nil {
		return response.FromError(c, err)
	}

	subs, err := h.subscriptionService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, subs)
}

// CancelSubscription handles POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) CancelSubscription(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	sub, err := h.subscriptionService.Cancel(c.UserContext(), user, id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Subscription canceled", sub)
}
