package course

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// ListCategories handles GET /api/v1/categories
func (h *CourseHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.courseService.ListCategories(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, categories)
}

// CreateCategory handles POST /api/v1/categories (admin only)
func (h *CourseHandler) CreateCategory(c *fiber.Ctx) error {
	var req services.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.courseService.CreateCategory(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Category created successfully", category)
}
