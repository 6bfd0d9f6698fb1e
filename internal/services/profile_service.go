package services

import (
	"context"

	"basera-backend/internal/db"
	"basera-backend/internal/models"
)

type ProfileService struct{}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, full_name, phone_number, address, created_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.FullName, &p.PhoneNumber, &p.Address, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes the editable contact fields. Only the owner reaches this
// path; the handler resolves userID from the token.
func (s *ProfileService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx, `
		UPDATE profiles SET full_name = $2, phone_number = $3, address = $4
		WHERE user_id = $1
		RETURNING id, user_id, full_name, phone_number, address, created_at
	`, userID, req.FullName, req.PhoneNumber, req.Address).
		Scan(&p.ID, &p.UserID, &p.FullName, &p.PhoneNumber, &p.Address, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
