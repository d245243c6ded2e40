package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/services"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService          *services.AuthService
	profileService       *services.ProfileService
	uploadService        *services.UploadService
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil when Redis is not configured.
func NewAuthHandler(svc *services.Services, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		authService:          svc.Auth,
		profileService:       svc.Profiles,
		uploadService:        svc.Uploads,
		bruteForceProtection: bruteForceProtection,
	}
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	User          model.UserResponse  `json:"user"`
	ExtensionKind model.ExtensionKind `json:"extension_kind"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reg, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "User registered successfully", RegisterResponse{
		User:          reg.User.ToResponse(),
		ExtensionKind: reg.Extension.Kind,
	})
}
