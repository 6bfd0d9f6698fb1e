package handlers

import (
	"net/http"

	"basera-backend/internal/models"
	"basera-backend/internal/services"
	"basera-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProfileHandler returns the authenticated user's profile
func GetProfileHandler(profileService *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := profileService.Get(c.Context(), currentUserID(c))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load profile data."})
		}
		return c.JSON(p)
	}
}

// UpdateProfileHandler saves the editable contact fields after validation.
func UpdateProfileHandler(profileService *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		req, ferr := validation.ProfileUpdate(req)
		if ferr != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}

		p, err := profileService.Update(c.Context(), currentUserID(c), req)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile."})
		}
		return c.JSON(p)
	}
}
