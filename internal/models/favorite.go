package models

import "time"

// Favorite joins a user to a listing. No further attributes.
type Favorite struct {
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
