package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// LoginResponse represents a successful login response
type LoginResponse struct {
	UserID       uint       `json:"user_id"`
	Role         model.Role `json:"role"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int        `json:"expires_in"` // in seconds
}

func newLoginResponse(res *services.LoginResult) LoginResponse {
	return LoginResponse{
		UserID:       res.User.ID,
		Role:         res.User.Role,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		TokenType:    res.Tokens.TokenType,
		ExpiresIn:    int(time.Until(res.Tokens.ExpiresAt).Seconds()),
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ip := c.IP()

	res, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthentication) && h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c.UserContext(), ip)
		}
		return response.FromError(c, err)
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c.UserContext(), ip)
	}

	return response.SuccessWithMessage(c, "Login successful", newLoginResponse(res))
}
