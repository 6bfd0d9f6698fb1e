package models

import "time"

// BookingStatusPending is the only status this service ever writes.
// Approval and rejection are the owner's concern and happen elsewhere.
const BookingStatusPending = "pending"

type Booking struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	FromDate  time.Time `json:"from_date"`
	ToDate    time.Time `json:"to_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
