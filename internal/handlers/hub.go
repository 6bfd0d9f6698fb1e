package handlers

import (
	"log/slog"
	"sync"

	"basera-backend/internal/models"
)

// wsWriter is the slice of the websocket connection the hub needs.
// Satisfied by *websocket.Conn.
type wsWriter interface {
	WriteJSON(v interface{}) error
}

// ChatHub fans newly inserted messages out to live chat views. Channels
// are keyed by listing id; each subscriber declares which counterpart it
// is talking to, and delivery is filtered to the matching sender/receiver
// pair so two conversations about the same listing never cross-talk.
type ChatHub struct {
	mu sync.RWMutex
	// listingID -> connID -> subscriber
	channels map[string]map[string]*subscriber
}

type subscriber struct {
	conn        wsWriter
	userID      string
	otherUserID string

	// Serializes writes to the socket; the websocket implementation
	// forbids concurrent writers and two publishes can otherwise hit
	// the same connection at once.
	writeMu sync.Mutex
}

func (s *subscriber) send(msg models.WSMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

var Hub = &ChatHub{
	channels: make(map[string]map[string]*subscriber),
}

// Join subscribes a connection to a listing channel for one counterpart
// pair. A connection follows at most one conversation at a time.
func (h *ChatHub) Join(listingID, connID string, c wsWriter, userID, otherUserID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.channels[listingID]; !ok {
		h.channels[listingID] = make(map[string]*subscriber)
	}
	h.channels[listingID][connID] = &subscriber{conn: c, userID: userID, otherUserID: otherUserID}
}

// Leave unsubscribes a connection from a listing channel.
func (h *ChatHub) Leave(listingID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.channels[listingID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.channels, listingID)
		}
	}
}

// Unregister removes a connection from every channel. Called when the
// socket closes so no subscription leaks.
func (h *ChatHub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for listingID, conns := range h.channels {
		if _, ok := conns[connID]; ok {
			delete(conns, connID)
			if len(conns) == 0 {
				delete(h.channels, listingID)
			}
		}
	}
}

// Publish delivers an inserted message to subscribers of its listing
// whose pair matches the message's sender and receiver. The hub lock
// only guards the membership lookup; each subscriber's own mutex
// serializes the socket write.
func (h *ChatHub) Publish(msg models.Message) {
	h.mu.RLock()
	var targets []*subscriber
	for _, sub := range h.channels[msg.ListingID] {
		matches := (sub.userID == msg.SenderID && sub.otherUserID == msg.ReceiverID) ||
			(sub.userID == msg.ReceiverID && sub.otherUserID == msg.SenderID)
		if matches {
			targets = append(targets, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		if err := sub.send(models.WSMessage{Event: "chat", Message: &msg}); err != nil {
			slog.Error("hub write failed", "err", err)
			// The read loop notices the dead socket and unregisters it.
		}
	}
}
