package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// CourseHandler handles course, category and feedback requests
type CourseHandler struct {
	courseService   *services.CourseService
	feedbackService *services.FeedbackService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc *services.Services) *CourseHandler {
	return &CourseHandler{
		courseService:   svc.Courses,
		feedbackService: svc.Feedback,
	}
}

// ListCourses handles GET /api/v1/courses[?category=ID]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	var categoryID *uint
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return response.BadRequest(c, "Invalid category ID")
		}
		cid := uint(id)
		categoryID = &cid
	}

	courses, err := h.courseService.List(c.UserContext(), categoryID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	course, err := h.courseService.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req services.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.courseService.Create(c.UserContext(), user, req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Course created successfully", course)
}

// AddResources handles POST /api/v1/courses/:id/add_resources
func (h *CourseHandler) AddResources(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	id, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	var req services.AddResourcesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.courseService.AddResources(c.UserContext(), user, id, req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Resources added successfully", course)
}
