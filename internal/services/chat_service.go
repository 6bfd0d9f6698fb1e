package services

import (
	"context"
	"time"

	"basera-backend/internal/db"
	"basera-backend/internal/models"

	"github.com/google/uuid"
)

// UnreadWindow is the heuristic for the conversation unread flag: the
// latest message was received within this window. Not a read receipt.
const UnreadWindow = 24 * time.Hour

type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

// ConversationRow is one message joined with the display names needed for
// conversation summaries.
type ConversationRow struct {
	models.Message
	SenderName   string
	ReceiverName string
	ListingTitle string
}

// SaveMessage inserts a chat message and fills in its id and timestamp.
func (s *ChatService) SaveMessage(ctx context.Context, msg *models.Message) error {
	return db.Pool.QueryRow(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, listing_id, body)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		uuid.New().String(), msg.SenderID, msg.ReceiverID, msg.ListingID, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// History returns the full ordered exchange between two users scoped to
// one listing, ascending by time, de-duplicated by message id.
func (s *ChatService) History(ctx context.Context, listingID, userID, otherUserID string) ([]models.Message, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, listing_id, body, created_at
		FROM messages
		WHERE listing_id = $1
		  AND ((sender_id = $2 AND receiver_id = $3) OR (sender_id = $3 AND receiver_id = $2))
		ORDER BY created_at ASC
	`, listingID, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ListingID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return DedupeMessages(messages), rows.Err()
}

// Conversations fetches everything the user sent or received, newest
// first, and folds it into per-(listing, counterpart) summaries.
func (s *ChatService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT m.id, m.sender_id, m.receiver_id, m.listing_id, m.body, m.created_at,
			COALESCE(sp.full_name, 'User'), COALESCE(rp.full_name, 'User'),
			COALESCE(l.title, 'Property')
		FROM messages m
		LEFT JOIN profiles sp ON sp.user_id = m.sender_id
		LEFT JOIN profiles rp ON rp.user_id = m.receiver_id
		LEFT JOIN listings l ON l.id = m.listing_id
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []ConversationRow
	for rows.Next() {
		var r ConversationRow
		if err := rows.Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.ListingID, &r.Body, &r.CreatedAt,
			&r.SenderName, &r.ReceiverName, &r.ListingTitle); err != nil {
			return nil, err
		}
		msgs = append(msgs, r)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return BuildConversations(msgs, userID, time.Now()), nil
}

// BuildConversations groups messages by (listing, counterpart). Rows must
// arrive newest-first; the first row of each group becomes the summary,
// so the result is ordered by most recent message descending.
func BuildConversations(rows []ConversationRow, userID string, now time.Time) []models.Conversation {
	seen := make(map[string]bool)
	out := []models.Conversation{}

	for _, r := range rows {
		otherID := r.ReceiverID
		otherName := r.ReceiverName
		if r.SenderID != userID {
			otherID = r.SenderID
			otherName = r.SenderName
		}

		key := r.ListingID + "-" + otherID
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, models.Conversation{
			ID:              key,
			ListingID:       r.ListingID,
			ListingTitle:    r.ListingTitle,
			OtherUserID:     otherID,
			OtherUserName:   otherName,
			LastMessage:     r.Body,
			LastMessageTime: r.CreatedAt,
			Unread:          r.ReceiverID == userID && now.Sub(r.CreatedAt) < UnreadWindow,
		})
	}
	return out
}

// DedupeMessages removes duplicate ids while preserving order. A message
// can arrive through both the historical fetch and the live feed.
func DedupeMessages(in []models.Message) []models.Message {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, m := range in {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

// CounterpartName resolves a user's display name for the chat header.
func (s *ChatService) CounterpartName(ctx context.Context, userID string) string {
	var name string
	err := db.Pool.QueryRow(ctx,
		`SELECT full_name FROM profiles WHERE user_id = $1`, userID,
	).Scan(&name)
	if err != nil || name == "" {
		return "User"
	}
	return name
}
