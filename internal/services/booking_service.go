package services

import (
	"context"
	"time"

	"basera-backend/internal/db"
	"basera-backend/internal/models"

	"github.com/google/uuid"
)

// PaymentDelay simulates the payment gateway round trip. Variable so
// tests can shorten it.
var PaymentDelay = 2 * time.Second

type BookingService struct{}

func NewBookingService() *BookingService {
	return &BookingService{}
}

// Pay runs the simulated payment and writes the booking with status
// pending. It takes a snapshot of the wizard fields rather than the
// wizard itself: the caller reads them under the session lock and
// applies the success transition under it afterwards, so this can block
// on the gateway delay without holding anything.
func (s *BookingService) Pay(ctx context.Context, listingID, userID string, fromDate, toDate time.Time) (*models.Booking, error) {
	select {
	case <-time.After(PaymentDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	b := models.Booking{
		ID:        uuid.New().String(),
		ListingID: listingID,
		UserID:    userID,
		FromDate:  fromDate,
		ToDate:    toDate,
		Status:    models.BookingStatusPending,
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO bookings (id, listing_id, user_id, from_date, to_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		b.ID, b.ListingID, b.UserID, b.FromDate, b.ToDate, b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the caller's bookings, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, listing_id, user_id, from_date, to_date, status, created_at
		FROM bookings WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ListingID, &b.UserID, &b.FromDate, &b.ToDate, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
