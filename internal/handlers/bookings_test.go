package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"basera-backend/internal/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWizardResponse(t *testing.T) {
	w := &booking.Wizard{
		ID:           "w1",
		ListingID:    "l1",
		ListingTitle: "Cozy 2BHK Apartment in Boring Road",
		Price:        1000,
		UserID:       "u1",
		Step:         booking.StepPayment,
		RentalType:   booking.ShortTerm,
		FromDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToDate:       time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}

	resp := toWizardResponse(w)
	assert.Equal(t, "w1", resp.ID)
	assert.Equal(t, "l1", resp.ListingID)
	assert.Equal(t, "Cozy 2BHK Apartment in Boring Road", resp.ListingTitle)
	assert.Equal(t, booking.StepPayment, resp.Step)
	assert.Equal(t, "2026-09-01", resp.FromDate)
	assert.Equal(t, "2026-09-04", resp.ToDate)
	assert.Equal(t, 3, resp.Quote.Nights)
	assert.Equal(t, float64(3000), resp.Quote.Total)
	assert.Equal(t, float64(900), resp.Quote.Deposit)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"listing_title":"Cozy 2BHK Apartment in Boring Road"`)
}

func TestToWizardResponseOmitsUnsetDates(t *testing.T) {
	w := &booking.Wizard{
		ID:           "w2",
		ListingID:    "l1",
		ListingTitle: "Studio",
		Step:         booking.StepDates,
		RentalType:   booking.ShortTerm,
	}

	resp := toWizardResponse(w)
	assert.Empty(t, resp.FromDate)
	assert.Empty(t, resp.ToDate)
	assert.Zero(t, resp.Quote.Total)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "from_date")
}
