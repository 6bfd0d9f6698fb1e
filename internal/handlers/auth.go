package handlers

import (
	"basera-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func tokenFromRequest(c *fiber.Ctx) string {
	// Query param `access_token` is needed for websocket clients that
	// cannot set headers.
	token := c.Query("access_token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}
	return token
}

// AuthMiddleware verifies the JWT and stores user id/email in locals.
// Failures carry the sign-in redirect the client should follow.
func AuthMiddleware(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sign in required", "redirect": "/auth"})
	}

	claims, err := services.ValidateToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token", "redirect": "/auth"})
	}

	uid, ok := claims["user_id"].(string)
	if !ok || uid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims", "redirect": "/auth"})
	}
	c.Locals("user_id", uid)

	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}

	return c.Next()
}

// OptionalAuthMiddleware resolves the user when a valid token is present
// but lets anonymous requests through. The directory uses it to decide
// whether contact phones are redacted.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	if token := tokenFromRequest(c); token != "" {
		if claims, err := services.ValidateToken(token); err == nil {
			if uid, ok := claims["user_id"].(string); ok && uid != "" {
				c.Locals("user_id", uid)
			}
		}
	}
	return c.Next()
}

// currentUserID returns the authenticated user id or "".
func currentUserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}
