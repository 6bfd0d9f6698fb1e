package booking

import (
	"sync"

	"github.com/google/uuid"
)

// Manager keeps the wizard sessions currently in progress.
type Manager struct {
	mu      sync.RWMutex
	wizards map[string]*Wizard
}

func NewManager() *Manager {
	return &Manager{wizards: make(map[string]*Wizard)}
}

// Open starts a new wizard for a listing. userID may be empty; the dates
// step enforces authentication later.
func (m *Manager) Open(listingID, listingTitle string, price float64, userID string) *Wizard {
	w := &Wizard{
		ID:           uuid.New().String(),
		ListingID:    listingID,
		ListingTitle: listingTitle,
		Price:        price,
		UserID:       userID,
		Step:         StepType,
		RentalType:   ShortTerm,
		Occupants:    1,
	}

	m.mu.Lock()
	m.wizards[w.ID] = w
	m.mu.Unlock()
	return w
}

func (m *Manager) Get(id string) (*Wizard, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wizards[id]
	return w, ok
}

// Close resets and removes a wizard session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wizards[id]; ok {
		w.Reset()
		delete(m.wizards, id)
	}
}

// Mutate runs fn while holding the manager lock, serializing wizard
// access across concurrent requests for the same session.
func (m *Manager) Mutate(id string, fn func(*Wizard) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wizards[id]
	if !ok {
		return ErrNoSession
	}
	return fn(w)
}
