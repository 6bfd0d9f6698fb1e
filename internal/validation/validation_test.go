package validation

import (
	"strings"
	"testing"

	"basera-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"+919876543210", true},
		{"12345", false},          // too short
		{"+1234", false},          // too short
		{"98765432109", true},     // 11-digit local number, no leading zero
		{"+0123456789012", false}, // leading zero
		{" +919876543210 ", true}, // trimmed before matching
		{"+919876543210123456789", false},
	}

	for _, tc := range cases {
		got, ferr := Phone("phone_number", tc.phone)
		if tc.ok {
			require.Nil(t, ferr, "expected %q to be accepted", tc.phone)
			assert.Equal(t, strings.TrimSpace(tc.phone), got)
		} else {
			require.NotNil(t, ferr, "expected %q to be rejected", tc.phone)
			assert.Equal(t, "phone_number", ferr.Field)
		}
	}
}

func TestEmail(t *testing.T) {
	got, ferr := Email("  user@example.com ")
	require.Nil(t, ferr)
	assert.Equal(t, "user@example.com", got)

	_, ferr = Email("not-an-email")
	require.NotNil(t, ferr)
	assert.Equal(t, "email", ferr.Field)
}

func TestMessageBody(t *testing.T) {
	got, ferr := MessageBody("  hello  ")
	require.Nil(t, ferr)
	assert.Equal(t, "hello", got)

	// whitespace-only trims to empty
	_, ferr = MessageBody("   ")
	require.NotNil(t, ferr)
	assert.Equal(t, "Message cannot be empty", ferr.Message)

	_, ferr = MessageBody(strings.Repeat("a", 2001))
	require.NotNil(t, ferr)
}

func TestSignupFirstFailureOnly(t *testing.T) {
	// Both name and email are invalid; only the name error surfaces.
	_, ferr := Signup(models.RegisterRequest{
		FullName: "x",
		Email:    "bad",
	})
	require.NotNil(t, ferr)
	assert.Equal(t, "full_name", ferr.Field)
}

func TestSignupPasswordConfirmation(t *testing.T) {
	req := models.RegisterRequest{
		FullName:        "Rajesh Kumar",
		Email:           "rajesh@example.com",
		PhoneNumber:     "+919876543210",
		Address:         "Boring Road, Patna",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	}
	_, ferr := Signup(req)
	require.NotNil(t, ferr)
	assert.Equal(t, "confirm_password", ferr.Field)

	req.ConfirmPassword = "secret123"
	got, ferr := Signup(req)
	require.Nil(t, ferr)
	assert.Equal(t, "Rajesh Kumar", got.FullName)
}

func TestListing(t *testing.T) {
	req := models.CreateListingRequest{
		Title:        "Cozy 2BHK Apartment",
		Description:  "Spacious 2-bedroom apartment with modern amenities.",
		Category:     "Apartment",
		Price:        "12000",
		ContactPhone: "+919876543210",
	}

	got, price, ferr := Listing(req)
	require.Nil(t, ferr)
	assert.Equal(t, 12000.0, price)
	assert.Equal(t, "Apartment", got.Category)

	bad := req
	bad.Price = "-5"
	_, _, ferr = Listing(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "price", ferr.Field)

	bad = req
	bad.Price = "not a number"
	_, _, ferr = Listing(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "price", ferr.Field)

	bad = req
	bad.Price = "2000000000"
	_, _, ferr = Listing(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "Price is too high", ferr.Message)

	bad = req
	bad.Category = "Castle"
	_, _, ferr = Listing(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "category", ferr.Field)

	bad = req
	bad.Title = "tiny"
	_, _, ferr = Listing(bad)
	require.NotNil(t, ferr)
	assert.Equal(t, "title", ferr.Field)
}

func TestListingImageCount(t *testing.T) {
	staged := []string{"a", "b", "c", "d", "e"}

	// a 6th image is rejected and the staged set is left untouched
	ferr := ListingImageCount(len(staged), 1)
	require.NotNil(t, ferr)
	assert.Len(t, staged, 5)

	assert.Nil(t, ListingImageCount(4, 1))
	assert.Nil(t, ListingImageCount(0, 5))
	assert.NotNil(t, ListingImageCount(0, 6))
}

func TestBookingInfo(t *testing.T) {
	name, phone, ferr := BookingInfo(" Priya Singh ", "+918765432109", 2)
	require.Nil(t, ferr)
	assert.Equal(t, "Priya Singh", name)
	assert.Equal(t, "+918765432109", phone)

	_, _, ferr = BookingInfo("", "+918765432109", 2)
	require.NotNil(t, ferr)
	assert.Equal(t, "contact_name", ferr.Field)

	_, _, ferr = BookingInfo("Priya Singh", "+918765432109", 0)
	require.NotNil(t, ferr)
	assert.Equal(t, "occupants", ferr.Field)

	_, _, ferr = BookingInfo("Priya Singh", "+918765432109", 51)
	require.NotNil(t, ferr)
	assert.Equal(t, "Too many occupants", ferr.Message)
}
