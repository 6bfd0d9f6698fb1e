package models

import "time"

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	ListingID  string    `json:"listing_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	ListingID  string `json:"listing_id"`
	Body       string `json:"body"`
}

// Conversation is a derived grouping of messages by (listing, counterpart).
// It is reconstructed on every load and never stored.
type Conversation struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listing_id"`
	ListingTitle    string    `json:"listing_title"`
	OtherUserID     string    `json:"other_user_id"`
	OtherUserName   string    `json:"other_user_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	Unread          bool      `json:"unread"`
}

// WSMessage is the envelope exchanged over the chat websocket.
type WSMessage struct {
	Event       string   `json:"event"` // "join", "leave", "chat"
	ListingID   string   `json:"listing_id,omitempty"`
	OtherUserID string   `json:"other_user_id,omitempty"`
	Text        string   `json:"text,omitempty"`
	Message     *Message `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
}
