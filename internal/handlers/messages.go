package handlers

import (
	"net/http"

	"basera-backend/internal/models"
	"basera-backend/internal/services"
	"basera-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ConversationsHandler returns the caller's conversation list, derived
// from the flat message table, most recent first.
func ConversationsHandler(chatService *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		convs, err := chatService.Conversations(c.Context(), currentUserID(c))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load conversations"})
		}
		return c.JSON(convs)
	}
}

// ChatHandler returns everything the chat view needs on entry: listing
// title and owner, the counterpart's display name, and the ordered
// message history.
func ChatHandler(chatService *services.ChatService, listingService *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)
		listingID := c.Params("listingID")
		otherUserID := c.Params("otherUserID")

		messages, err := chatService.History(c.Context(), listingID, userID, otherUserID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load chat"})
		}
		if messages == nil {
			messages = []models.Message{}
		}

		resp := fiber.Map{
			"messages":        messages,
			"other_user_name": chatService.CounterpartName(c.Context(), otherUserID),
		}
		if l, err := listingService.GetByID(c.Context(), listingID); err == nil {
			resp["listing"] = fiber.Map{"title": l.Title, "owner_id": l.OwnerID}
		}
		return c.JSON(resp)
	}
}

// SendMessageHandler validates and persists a message, then publishes it
// to the live feed. The stored message is returned only on success.
func SendMessageHandler(chatService *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SendMessageRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.ReceiverID == "" || req.ListingID == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "receiver_id and listing_id required"})
		}

		body, ferr := validation.MessageBody(req.Body)
		if ferr != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}

		m := models.Message{
			SenderID:   currentUserID(c),
			ReceiverID: req.ReceiverID,
			ListingID:  req.ListingID,
			Body:       body,
		}
		if err := chatService.SaveMessage(c.Context(), &m); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
		}

		Hub.Publish(m)
		return c.Status(http.StatusCreated).JSON(m)
	}
}
