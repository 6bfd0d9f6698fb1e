package models

import "time"

// Categories accepted for a listing. Anything else is rejected at
// validation time.
var ListingCategories = []string{
	"Apartment",
	"House",
	"Room",
	"Office",
	"Shop",
	"Warehouse",
	"Land",
	"Other",
}

// MaxListingImages caps how many images a single listing may carry.
const MaxListingImages = 5

type Listing struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Images       []string  `json:"images"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Resolved from the owner's profile at read time. Not stored on the
	// listing row.
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerPhone string `json:"owner_phone,omitempty"`

	// Set when the record comes from the bundled sample set rather than
	// the database.
	Sample bool `json:"sample,omitempty"`
}

type CreateListingRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Price        string `json:"price"` // raw text field, parsed server-side
	ContactPhone string `json:"contact_phone"`
	Location     string `json:"location"`
}
