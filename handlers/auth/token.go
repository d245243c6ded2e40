package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	res, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, newLoginResponse(res))
}

// Logout handles user logout by blacklisting tokens. The refresh token in the body is optional.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req RefreshRequest
	_ = c.BodyParser(&req)

	if err := h.authService.Logout(c.UserContext(), claims, req.RefreshToken); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Successfully logged out", nil)
}

// LogoutAll invalidates every token of the caller
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.authService.LogoutAll(c.UserContext(), userID); err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Logged out from all sessions", nil)
}
