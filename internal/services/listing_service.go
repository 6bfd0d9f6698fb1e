package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"basera-backend/internal/db"
	"basera-backend/internal/models"
	"basera-backend/internal/samples"

	"github.com/google/uuid"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingService struct{}

func NewListingService() *ListingService {
	return &ListingService{}
}

const listingColumns = `l.id, l.owner_id, l.title, l.description, l.category, l.price, l.images,
	l.contact_phone, COALESCE(l.location, ''), l.created_at,
	COALESCE(p.full_name, 'Anonymous'), COALESCE(p.phone_number, '')`

// List returns the directory, newest first. Unauthenticated viewers get
// the contact-phone-redacted projection. A read failure degrades to the
// bundled sample set; a successful read is padded with it. The directory
// never surfaces a hard error.
func (s *ListingService) List(ctx context.Context, authed bool, filterText string) []models.Listing {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		LEFT JOIN profiles p ON p.user_id = l.owner_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		slog.Error("listings query failed, serving sample data", "err", err)
		return finishListings(samples.Listings(), authed, filterText)
	}
	defer rows.Close()

	var primary []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Price,
			&l.Images, &l.ContactPhone, &l.Location, &l.CreatedAt, &l.OwnerName, &l.OwnerPhone); err != nil {
			slog.Error("listing scan failed, serving sample data", "err", err)
			return finishListings(samples.Listings(), authed, filterText)
		}
		primary = append(primary, l)
	}
	if rows.Err() != nil {
		slog.Error("listings read failed, serving sample data", "err", rows.Err())
		return finishListings(samples.Listings(), authed, filterText)
	}

	return finishListings(MergeWithSamples(primary, samples.Listings()), authed, filterText)
}

// finishListings applies the viewer projection and the text filter to a
// directory result set. Redaction runs over the whole set so sample rows
// get the same treatment as primary ones.
func finishListings(in []models.Listing, authed bool, filterText string) []models.Listing {
	if !authed {
		in = RedactListings(in)
	}
	return FilterListings(in, filterText)
}

// GetByID fetches one listing, falling back to the sample set on a miss
// or a read error. ErrListingNotFound is terminal.
func (s *ListingService) GetByID(ctx context.Context, id string) (models.Listing, error) {
	var l models.Listing
	err := db.Pool.QueryRow(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		LEFT JOIN profiles p ON p.user_id = l.owner_id
		WHERE l.id = $1
	`, id).Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Price,
		&l.Images, &l.ContactPhone, &l.Location, &l.CreatedAt, &l.OwnerName, &l.OwnerPhone)
	if err == nil {
		return l, nil
	}

	if sample, ok := samples.ByID(id); ok {
		return sample, nil
	}
	return models.Listing{}, ErrListingNotFound
}

// Create inserts a new listing. The image URLs must already be uploaded;
// owner_id is immutable after this point.
func (s *ListingService) Create(ctx context.Context, ownerID string, req models.CreateListingRequest, price float64, imageURLs []string) (models.Listing, error) {
	if imageURLs == nil {
		imageURLs = []string{}
	}

	var l models.Listing
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO listings (id, owner_id, title, description, category, price, images, contact_phone, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING id, owner_id, title, description, category, price, images, contact_phone, COALESCE(location, ''), created_at
	`, uuid.New().String(), ownerID, req.Title, req.Description, req.Category, price, imageURLs, req.ContactPhone, strings.TrimSpace(req.Location)).
		Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Price,
			&l.Images, &l.ContactPhone, &l.Location, &l.CreatedAt)
	if err != nil {
		return models.Listing{}, err
	}
	return l, nil
}

// ListByOwner returns a user's own listings. On a read error it degrades
// to the first two sample listings, matching the profile view's fallback.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) []models.Listing {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+listingColumns+`
		FROM listings l
		LEFT JOIN profiles p ON p.user_id = l.owner_id
		WHERE l.owner_id = $1
		ORDER BY l.created_at DESC
	`, ownerID)
	if err != nil {
		slog.Error("own listings query failed, serving sample data", "err", err)
		return samples.Listings()[:2]
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &l.Price,
			&l.Images, &l.ContactPhone, &l.Location, &l.CreatedAt, &l.OwnerName, &l.OwnerPhone); err != nil {
			slog.Error("own listings scan failed, serving sample data", "err", err)
			return samples.Listings()[:2]
		}
		out = append(out, l)
	}
	return out
}

// FilterListings retains records whose title, category, location, or
// description contains the query, case-insensitively. An empty query
// keeps everything.
func FilterListings(in []models.Listing, filterText string) []models.Listing {
	q := strings.ToLower(strings.TrimSpace(filterText))
	if q == "" {
		return in
	}

	out := []models.Listing{}
	for _, l := range in {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Category), q) ||
			strings.Contains(strings.ToLower(l.Location), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			out = append(out, l)
		}
	}
	return out
}

// MergeWithSamples is the two-tier source merge: primary rows first, then
// the fallback set appended.
func MergeWithSamples(primary, fallback []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(primary)+len(fallback))
	out = append(out, primary...)
	out = append(out, fallback...)
	return out
}

// RedactListings blanks contact phones for unauthenticated viewers,
// mirroring the privacy-safe directory view.
func RedactListings(in []models.Listing) []models.Listing {
	out := make([]models.Listing, len(in))
	for i, l := range in {
		l.ContactPhone = ""
		l.OwnerPhone = ""
		out[i] = l
	}
	return out
}
