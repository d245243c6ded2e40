package instructor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// InstructorHandler handles instructor records
type InstructorHandler struct {
	instructorService *services.InstructorService
}

// NewInstructorHandler creates a new instructor handler
func NewInstructorHandler(instructorService *services.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService}
}

// ListInstructors handles GET /api/v1/instructors
func (h *InstructorHandler) ListInstructors(c *fiber.Ctx) error {
	instructors, err := h.instructorService.List(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, instructors)
}

// GetInstructor handles GET /api/v1/instructors/:id
func (h *InstructorHandler) GetInstructor(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	instructor, err := h.instructorService.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, instructor)
}

// CreateInstructor handles POST /api/v1/instructors (admin only)
func (h *InstructorHandler) CreateInstructor(c *fiber.Ctx) error {
	var req services.CreateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	instructor, err := h.instructorService.Create(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Instructor created successfully", instructor)
}

// UpdateInstructor handles PUT /api/v1/instructors/:id
func (h *InstructorHandler) UpdateInstructor(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	var patch model.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	instructor, err := h.instructorService.Update(c.UserContext(), user, id, patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Instructor updated successfully", instructor)
}

// DeleteInstructor handles DELETE /api/v1/instructors/:id
func (h *InstructorHandler) DeleteInstructor(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.instructorService.Delete(c.UserContext(), user, id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Instructor deleted successfully", nil)
}

// ListInstructorCourses handles GET /api/v1/instructors/:id/courses
func (h *InstructorHandler) ListInstructorCourses(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	courses, err := h.instructorService.Courses(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, courses)
}
