package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Role   string `query:"role"`
	Search string `query:"search"`
}

// AdminHandler serves the admin-only user management endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers retrieves all users with pagination and filters
// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var req ListUsersRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	users, total, err := h.adminService.ListUsers(c.UserContext(), services.ListUsersRequest{
		Role:   req.Role,
		Search: req.Search,
		Page:   req.Page,
		Limit:  req.Limit,
	})
	if err != nil {
		return response.FromError(c, err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return response.Paginated(c, out, response.CalculatePagination(req.Page, req.Limit, total))
}

// DeleteUser removes a user that owns no bookings, courses, invoices or subscriptions
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	userID, err := utils.ParseID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.adminService.DeleteUser(c.UserContext(), adminID, userID); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "User deleted successfully", fiber.Map{
		"user_id": userID,
	})
}
