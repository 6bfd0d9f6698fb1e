package services

import (
	"testing"

	"basera-backend/internal/models"
	"basera-backend/internal/samples"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterListings(t *testing.T) {
	listings := []models.Listing{
		{ID: "1", Title: "Cozy 2BHK", Category: "Apartment", Description: "Spacious flat"},
		{ID: "2", Title: "Budget Room", Category: "Room", Description: "Simple and clean"},
	}

	got := FilterListings(listings, "room")
	require.Len(t, got, 1)
	assert.Equal(t, "Budget Room", got[0].Title)

	// case-insensitive
	got = FilterListings(listings, "ROOM")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// matches description too
	got = FilterListings(listings, "spacious")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// matches location
	listings[0].Location = "Boring Road, Patna"
	got = FilterListings(listings, "boring road")
	require.Len(t, got, 1)

	// empty query keeps everything
	assert.Len(t, FilterListings(listings, ""), 2)
	assert.Len(t, FilterListings(listings, "   "), 2)

	// no match
	assert.Empty(t, FilterListings(listings, "warehouse"))
}

func TestFilterListingsIdempotent(t *testing.T) {
	listings := samples.Listings()
	first := FilterListings(listings, "patna")
	second := FilterListings(listings, "patna")
	assert.Equal(t, first, second)
}

func TestMergeWithSamples(t *testing.T) {
	primary := []models.Listing{{ID: "real-1"}, {ID: "real-2"}}
	fallback := []models.Listing{{ID: "dummy-1", Sample: true}}

	got := MergeWithSamples(primary, fallback)
	require.Len(t, got, 3)
	// primary first, fallback appended
	assert.Equal(t, "real-1", got[0].ID)
	assert.Equal(t, "real-2", got[1].ID)
	assert.Equal(t, "dummy-1", got[2].ID)

	// empty primary degrades to the fallback alone
	got = MergeWithSamples(nil, fallback)
	require.Len(t, got, 1)
	assert.True(t, got[0].Sample)
}

func TestRedactListings(t *testing.T) {
	in := []models.Listing{
		{ID: "1", ContactPhone: "+919876543210", OwnerPhone: "+919876543210", OwnerName: "Rajesh Kumar"},
	}

	got := RedactListings(in)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].ContactPhone)
	assert.Empty(t, got[0].OwnerPhone)
	// display name survives redaction
	assert.Equal(t, "Rajesh Kumar", got[0].OwnerName)
	// input is not mutated
	assert.Equal(t, "+919876543210", in[0].ContactPhone)
}

func TestSamplesByID(t *testing.T) {
	l, ok := samples.ByID("dummy-1")
	require.True(t, ok)
	assert.Equal(t, "Cozy 2BHK Apartment in Boring Road", l.Title)
	assert.True(t, l.Sample)
	assert.Positive(t, l.Price)

	_, ok = samples.ByID("missing")
	assert.False(t, ok)
}

func TestFinishListingsRedactsSamplesForAnonymous(t *testing.T) {
	primary := []models.Listing{{
		ID:           "real-1",
		Title:        "Studio near Gandhi Maidan",
		ContactPhone: "+919812345678",
		OwnerPhone:   "+919812345678",
	}}
	merged := MergeWithSamples(primary, samples.Listings())

	anon := finishListings(merged, false, "")
	require.Len(t, anon, len(merged))
	for _, l := range anon {
		assert.Empty(t, l.ContactPhone, "listing %s leaks contact phone", l.ID)
		assert.Empty(t, l.OwnerPhone, "listing %s leaks owner phone", l.ID)
	}

	authed := finishListings(merged, true, "")
	require.Len(t, authed, len(merged))
	assert.Equal(t, "+919812345678", authed[0].ContactPhone)
	// sample rows keep their phones for signed-in viewers
	assert.NotEmpty(t, authed[1].ContactPhone)
}

func TestFinishListingsFiltersAfterProjection(t *testing.T) {
	got := finishListings(samples.Listings(), false, "boring road")
	require.NotEmpty(t, got)
	for _, l := range got {
		assert.Empty(t, l.ContactPhone)
	}
}
