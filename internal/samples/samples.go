// Package samples bundles the static fallback listing set shown when the
// database is unreachable or empty. The directory view must never render a
// hard error for a read failure.
package samples

import (
	"time"

	"basera-backend/internal/models"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

var listings = []models.Listing{
	{
		ID:          "dummy-1",
		Title:       "Cozy 2BHK Apartment in Boring Road",
		Description: "Spacious 2-bedroom apartment with modern amenities. Located in the heart of Patna's premium locality. Perfect for families.",
		Category:    "Apartment",
		Price:       12000,
		Images: []string{
			"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=500",
			"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=500",
		},
		ContactPhone: "+91 9876543210",
		Location:     "Boring Road, Patna",
		CreatedAt:    ts("2024-01-15T10:00:00Z"),
		OwnerName:    "Rajesh Kumar",
		OwnerPhone:   "+91 9876543210",
		Sample:       true,
	},
	{
		ID:          "dummy-2",
		Title:       "1BHK Studio near Bailey Road",
		Description: "Affordable studio apartment perfect for students and working professionals. Walking distance to major markets and transport.",
		Category:    "Studio",
		Price:       8000,
		Images: []string{
			"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=500",
			"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=500",
		},
		ContactPhone: "+91 8765432109",
		Location:     "Bailey Road, Patna",
		CreatedAt:    ts("2024-01-12T15:30:00Z"),
		OwnerName:    "Priya Singh",
		OwnerPhone:   "+91 8765432109",
		Sample:       true,
	},
	{
		ID:          "dummy-3",
		Title:       "3BHK Family Home in Kankarbagh",
		Description: "Spacious family home with garden and parking. Great for joint families. Well-connected to schools and hospitals.",
		Category:    "House",
		Price:       18000,
		Images: []string{
			"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=500",
			"https://images.unsplash.com/photo-1449844908441-8829872d2607?w=500",
		},
		ContactPhone: "+91 7654321098",
		Location:     "Kankarbagh, Patna",
		CreatedAt:    ts("2024-01-10T09:15:00Z"),
		OwnerName:    "Amit Sharma",
		OwnerPhone:   "+91 7654321098",
		Sample:       true,
	},
	{
		ID:          "dummy-4",
		Title:       "Modern 2BHK in Frazer Road",
		Description: "Newly renovated apartment with all modern facilities. Close to commercial areas and public transport.",
		Category:    "Apartment",
		Price:       15000,
		Images: []string{
			"https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=500",
			"https://images.unsplash.com/photo-1505873242700-f289a29e1e0f?w=500",
		},
		ContactPhone: "+91 6543210987",
		Location:     "Frazer Road, Patna",
		CreatedAt:    ts("2024-01-08T14:20:00Z"),
		OwnerName:    "Sunita Devi",
		OwnerPhone:   "+91 6543210987",
		Sample:       true,
	},
	{
		ID:          "dummy-5",
		Title:       "Budget Room in Patna City",
		Description: "Simple and clean room for budget-conscious tenants. Basic amenities provided. Good for short-term stays.",
		Category:    "Room",
		Price:       5000,
		Images: []string{
			"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=500",
		},
		ContactPhone: "+91 5432109876",
		Location:     "Patna City, Patna",
		CreatedAt:    ts("2024-01-05T11:45:00Z"),
		OwnerName:    "Mohan Lal",
		OwnerPhone:   "+91 5432109876",
		Sample:       true,
	},
}

// Listings returns a copy of the sample set so callers can append or filter
// without mutating the shared slice.
func Listings() []models.Listing {
	out := make([]models.Listing, len(listings))
	copy(out, listings)
	return out
}

// ByID looks a sample listing up by id.
func ByID(id string) (models.Listing, bool) {
	for _, l := range listings {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}
