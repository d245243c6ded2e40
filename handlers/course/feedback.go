package course

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// ListFeedback handles GET /api/v1/courses/:id/feedback
func (h *CourseHandler) ListFeedback(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	feedback, err := h.feedbackService.ListByCourse(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, feedback)
}

// CreateFeedback handles POST /api/v1/feedback. user_id defaults to the caller.
func (h *CourseHandler) CreateFeedback(c *fiber.Ctx) error {
	var req services.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, err := utils.TargetUser(c, req.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	req.UserID = userID

	feedback, err := h.feedbackService.Create(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Feedback submitted successfully", feedback)
}
