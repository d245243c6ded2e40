package utils

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// MakeHTTPHandleFunc binds a handler that needs the storage handle to a fiber route
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.FromError(c, err)
		}
		return nil
	}
}

// ParseID reads a positive numeric route parameter
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid %s", name)
	}
	return uint(id), nil
}

// TargetUser resolves the user an operation acts on. Zero means the caller; acting on someone
// else requires the admin role.
func TargetUser(c *fiber.Ctx, requested uint) (uint, error) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, &apperrors.Error{Err: apperrors.ErrAuthentication, Message: "authentication required"}
	}
	if requested == 0 || requested == callerID {
		return callerID, nil
	}
	if !middleware.IsAdmin(c) {
		return 0, apperrors.NewAuthorizationError("you can only act on your own account")
	}
	return requested, nil
}
