package handlers

import (
	"net/http"

	"basera-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListFavoritesHandler returns the caller's favorited listings.
func ListFavoritesHandler(favoriteService *services.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listings, err := favoriteService.ListListings(c.Context(), currentUserID(c))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load favorites"})
		}

		resp := make([]listingResponse, 0, len(listings))
		for _, l := range listings {
			resp = append(resp, toListingResponse(l))
		}
		return c.JSON(resp)
	}
}

// AddFavoriteHandler writes the heart toggle through to the join table.
func AddFavoriteHandler(favoriteService *services.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := favoriteService.Add(c.Context(), currentUserID(c), c.Params("listingID")); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save favorite"})
		}
		return c.SendStatus(http.StatusNoContent)
	}
}

// RemoveFavoriteHandler clears the heart toggle.
func RemoveFavoriteHandler(favoriteService *services.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := favoriteService.Remove(c.Context(), currentUserID(c), c.Params("listingID")); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
		}
		return c.SendStatus(http.StatusNoContent)
	}
}
