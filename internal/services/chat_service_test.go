package services

import (
	"testing"
	"time"

	"basera-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, sender, receiver, listing, body string, at time.Time) ConversationRow {
	return ConversationRow{
		Message: models.Message{
			ID:         id,
			SenderID:   sender,
			ReceiverID: receiver,
			ListingID:  listing,
			Body:       body,
			CreatedAt:  at,
		},
		SenderName:   "Sender " + sender,
		ReceiverName: "Receiver " + receiver,
		ListingTitle: "Listing " + listing,
	}
}

func TestBuildConversationsGroupsBothDirections(t *testing.T) {
	now := time.Now()
	// A→B and B→A on the same listing collapse into one conversation
	rows := []ConversationRow{
		row("m2", "userB", "userA", "l1", "reply", now),
		row("m1", "userA", "userB", "l1", "hello", now.Add(-time.Hour)),
	}

	convs := BuildConversations(rows, "userA", now)
	require.Len(t, convs, 1)
	assert.Equal(t, "l1-userB", convs[0].ID)
	assert.Equal(t, "userB", convs[0].OtherUserID)
	// most recent message is the summary
	assert.Equal(t, "reply", convs[0].LastMessage)
	assert.Equal(t, "Listing l1", convs[0].ListingTitle)
}

func TestBuildConversationsSeparatesListings(t *testing.T) {
	now := time.Now()
	rows := []ConversationRow{
		row("m2", "userB", "userA", "l2", "about the room", now),
		row("m1", "userB", "userA", "l1", "about the flat", now.Add(-time.Minute)),
	}

	convs := BuildConversations(rows, "userA", now)
	require.Len(t, convs, 2)
	// ordered by most recent message descending
	assert.Equal(t, "l2", convs[0].ListingID)
	assert.Equal(t, "l1", convs[1].ListingID)
}

func TestBuildConversationsUnreadHeuristic(t *testing.T) {
	now := time.Now()
	rows := []ConversationRow{
		// received recently: unread
		row("m1", "userB", "userA", "l1", "hi", now.Add(-time.Hour)),
		// received but stale: read
		row("m2", "userC", "userA", "l2", "old", now.Add(-25*time.Hour)),
		// sent by the user: never unread
		row("m3", "userA", "userD", "l3", "sent", now),
	}

	convs := BuildConversations(rows, "userA", now)
	require.Len(t, convs, 3)

	byListing := map[string]models.Conversation{}
	for _, c := range convs {
		byListing[c.ListingID] = c
	}
	assert.True(t, byListing["l1"].Unread)
	assert.False(t, byListing["l2"].Unread)
	assert.False(t, byListing["l3"].Unread)
}

func TestBuildConversationsCounterpartName(t *testing.T) {
	now := time.Now()
	rows := []ConversationRow{
		// user sent this one: counterpart is the receiver
		row("m1", "userA", "userB", "l1", "hello", now),
	}

	convs := BuildConversations(rows, "userA", now)
	require.Len(t, convs, 1)
	assert.Equal(t, "Receiver userB", convs[0].OtherUserName)
}

func TestDedupeMessages(t *testing.T) {
	msgs := []models.Message{
		{ID: "m1", Body: "a"},
		{ID: "m2", Body: "b"},
		{ID: "m1", Body: "a"}, // delivered by both history fetch and live feed
	}

	got := DedupeMessages(msgs)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}
