package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"basera-backend/internal/models"
	"basera-backend/internal/services"
	"basera-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WSUpgradeMiddleware upgrades the connection to WebSocket
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebSocketHandler runs the live chat feed: join a listing channel, leave
// it, or send a message that is persisted and fanned out.
func WebSocketHandler(chatService *services.ChatService) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID := c.Locals("user_id").(string)

		connID := uuid.New().String()

		var currentListing, currentOther string

		defer func() {
			Hub.Unregister(connID)
			c.Close()
		}()

		for {
			msgType, raw, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Error("websocket read failed", "err", err)
				}
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}

			var msg models.WSMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				slog.Error("websocket parse failed", "err", err)
				continue
			}

			switch msg.Event {
			case "join":
				if msg.ListingID == "" || msg.OtherUserID == "" {
					writeWSError(c, "listing_id and other_user_id required")
					continue
				}
				if currentListing != "" {
					Hub.Leave(currentListing, connID)
				}
				currentListing, currentOther = msg.ListingID, msg.OtherUserID
				Hub.Join(currentListing, connID, c, userID, currentOther)

			case "leave":
				if currentListing != "" {
					Hub.Leave(currentListing, connID)
					currentListing, currentOther = "", ""
				}

			case "chat":
				if currentListing == "" {
					writeWSError(c, "join a conversation first")
					continue
				}
				body, ferr := validation.MessageBody(msg.Text)
				if ferr != nil {
					writeWSError(c, ferr.Message)
					continue
				}
				m := models.Message{
					SenderID:   userID,
					ReceiverID: currentOther,
					ListingID:  currentListing,
					Body:       body,
				}
				if err := chatService.SaveMessage(context.Background(), &m); err != nil {
					slog.Error("message save failed", "err", err)
					writeWSError(c, "Failed to send message")
					continue
				}
				Hub.Publish(m)

			default:
				slog.Warn("unknown websocket event", "event", msg.Event)
			}
		}
	})
}

func writeWSError(c *websocket.Conn, msg string) {
	if err := c.WriteJSON(models.WSMessage{Event: "error", Error: msg}); err != nil {
		slog.Error("websocket write failed", "err", err)
	}
}
