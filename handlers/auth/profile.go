package auth

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/middleware"
	"github.com/nexpertia/marketplace-api/utils/response"
)

// ProfileResponse is the caller together with its extension record
type ProfileResponse struct {
	User      model.UserResponse  `json:"user"`
	Extension model.UserExtension `json:"extension"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	ext, err := h.profileService.Get(c.UserContext(), user.ID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, ProfileResponse{User: user.ToResponse(), Extension: ext})
}

// UpdateProfile merges the given fields into the current user's profile or instructor record
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var patch model.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ext, err := h.profileService.Update(c.UserContext(), user.ID, patch)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Profile updated successfully", ProfileResponse{User: user.ToResponse(), Extension: ext})
}

// UploadProfilePicture stores the multipart "file" field as the caller's profile picture
func (h *AuthHandler) UploadProfilePicture(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file part")
	}
	if fileHeader.Filename == "" {
		return response.BadRequest(c, "No selected file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}

	url, err := h.uploadService.ProfilePicture(c.UserContext(), userID, fileHeader.Filename, content)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Profile picture uploaded successfully", fiber.Map{"url": url})
}
