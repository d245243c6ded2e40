package invoice

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// CreateTemplateSettings handles POST /api/v1/invoice-template-settings
func (h *InvoiceHandler) CreateTemplateSettings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req services.CreateInvoiceTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.templateService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Invoice template settings created", settings)
}

// GetTemplateSettings handles GET /api/v1/invoice-template-settings
func (h *InvoiceHandler) GetTemplateSettings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	settings, err := h.templateService.Get(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, settings)
}

// UpdateTemplateSettings handles PUT /api/v1/invoice-template-settings
func (h *InvoiceHandler) UpdateTemplateSettings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var patch model.InvoiceTemplatePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.templateService.Update(c.UserContext(), userID, patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Invoice template settings updated", settings)
}
