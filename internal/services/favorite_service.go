package services

import (
	"context"

	"basera-backend/internal/db"
	"basera-backend/internal/models"
)

// FavoriteService persists the user/listing join table. The detail view's
// heart toggle writes through here as well, so the flag survives reloads.
type FavoriteService struct{}

func NewFavoriteService() *FavoriteService {
	return &FavoriteService{}
}

// Add is idempotent: favoriting twice leaves a single row.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO favorites (user_id, listing_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, listingID)
	return err
}

func (s *FavoriteService) Remove(ctx context.Context, userID, listingID string) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID)
	return err
}

// IsFavorite reports whether the listing is favorited by the user.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	var fav bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND listing_id = $2)`,
		userID, listingID).Scan(&fav)
	return fav, err
}

// ListListings returns the user's favorited listings, most recently
// favorited first.
func (s *FavoriteService) ListListings(ctx context.Context, userID string) ([]models.Listing, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+listingColumns+`
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		LEFT JOIN profiles p ON p.user_id = l.owner_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Price,
			&l.Images, &l.ContactPhone, &l.Location, &l.CreatedAt, &l.OwnerName, &l.OwnerPhone); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
