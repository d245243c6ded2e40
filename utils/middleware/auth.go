package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/auth"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	tokens           auth.TokenIssuer
	blacklistService *auth.BlacklistService
	users            *repository.UserRepository
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens auth.TokenIssuer, repos *repository.Repositories) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:           tokens,
		blacklistService: auth.NewBlacklistService(repos),
		users:            repos.Users,
	}
}

// authFailure is a rejected credential with the status it should produce
type authFailure struct {
	status  int
	message string
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, *model.User, *authFailure) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Missing authorization token"}
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid authorization format"}
	}

	claims, err := m.tokens.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, &authFailure{fiber.StatusUnauthorized, "Token has expired"}
		}
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid token"}
	}

	if claims.TokenType != auth.TokenTypeAccess {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid token type"}
	}

	isRevoked, err := m.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return nil, nil, &authFailure{fiber.StatusInternalServerError, "Failed to check token status"}
	}
	if isRevoked {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Token has been revoked"}
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, &authFailure{fiber.StatusUnauthorized, "User not found"}
		}
		return nil, nil, &authFailure{fiber.StatusInternalServerError, "Failed to load user"}
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Token has been invalidated"}
	}

	return claims, user, nil
}

func storeIdentity(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user_role", string(user.Role))
	c.Locals("claims", claims)
	c.Locals("user", user)
	c.Locals("token_jti", claims.ID)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, failure := m.authenticate(c)
		if failure != nil {
			return response.Error(c, failure.status, failure.message, statusCode(failure.status))
		}
		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// RequireRole must run after Required
func (m *AuthMiddleware) RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetUserRole(c)
		if !ok {
			return response.Forbidden(c, "Access denied")
		}

		for _, r := range roles {
			if model.Role(role) == r {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// RequireAdmin authenticates the request and checks for the admin role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, failure := m.authenticate(c)
		if failure != nil {
			return response.Error(c, failure.status, failure.message, statusCode(failure.status))
		}
		if user.Role != model.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}
		storeIdentity(c, claims, user)
		return c.Next()
	}
}

func statusCode(status int) string {
	if status == fiber.StatusUnauthorized {
		return "UNAUTHORIZED"
	}
	return "INTERNAL_ERROR"
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	r, ok := c.Locals("user_role").(string)
	return r, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	u, ok := c.Locals("user").(*model.User)
	return u, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}

// IsAdmin reports whether the authenticated caller is an admin
func IsAdmin(c *fiber.Ctx) bool {
	role, ok := GetUserRole(c)
	return ok && model.Role(role) == model.RoleAdmin
}
