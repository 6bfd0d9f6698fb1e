package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"basera-backend/internal/models"
	"basera-backend/internal/services"
	"basera-backend/internal/storage"
	"basera-backend/internal/utils"
	"basera-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListingsBucket is the object-store bucket listing images live in.
const ListingsBucket = "listings"

// listingResponse decorates a listing with the owner contact actions.
type listingResponse struct {
	models.Listing
	CallLink     string `json:"call_link,omitempty"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	Favorite     bool   `json:"favorite,omitempty"`
}

func toListingResponse(l models.Listing) listingResponse {
	return listingResponse{
		Listing:      l,
		CallLink:     utils.TelLink(l.ContactPhone),
		WhatsAppLink: utils.WhatsAppLink(l.ContactPhone, l.Title),
	}
}

// ListListingsHandler serves the directory. Optional-auth: anonymous
// viewers get redacted contact phones. Never a hard error.
func ListListingsHandler(listingService *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authed := currentUserID(c) != ""
		listings := listingService.List(c.Context(), authed, c.Query("q"))

		resp := make([]listingResponse, 0, len(listings))
		for _, l := range listings {
			resp = append(resp, toListingResponse(l))
		}
		return c.JSON(resp)
	}
}

// GetListingHandler serves the detail view, including the persisted
// favorite flag for authenticated viewers.
func GetListingHandler(listingService *services.ListingService, favoriteService *services.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, err := listingService.GetByID(c.Context(), c.Params("id"))
		if errors.Is(err, services.ErrListingNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}

		resp := toListingResponse(l)
		if uid := currentUserID(c); uid != "" {
			if fav, err := favoriteService.IsFavorite(c.Context(), uid, l.ID); err == nil {
				resp.Favorite = fav
			}
		} else {
			resp.Listing.ContactPhone = ""
			resp.Listing.OwnerPhone = ""
			resp.CallLink = ""
			resp.WhatsAppLink = ""
		}
		return c.JSON(resp)
	}
}

// CreateListingHandler accepts a multipart submission: text fields plus
// up to five images. Images are stored first under a per-user,
// timestamped key; any upload failure aborts the whole submission and
// removes what was already stored, so no listing exists without its
// declared images.
func CreateListingHandler(listingService *services.ListingService, store *storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUserID(c)

		req := models.CreateListingRequest{
			Title:        c.FormValue("title"),
			Description:  c.FormValue("description"),
			Category:     c.FormValue("category"),
			Price:        c.FormValue("price"),
			ContactPhone: c.FormValue("contact_phone"),
			Location:     c.FormValue("location"),
		}

		req, price, ferr := validation.Listing(req)
		if ferr != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}

		form, err := c.MultipartForm()
		var files []*multipart.FileHeader
		if err == nil && form != nil {
			files = form.File["images"]
		}
		if ferr := validation.ListingImageCount(0, len(files)); ferr != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": ferr.Message, "field": ferr.Field})
		}

		var imageURLs []string
		var storedKeys []string
		for _, fh := range files {
			key := fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), filepath.Ext(fh.Filename))

			src, err := fh.Open()
			if err == nil {
				err = store.Put(ListingsBucket, key, src)
				src.Close()
			}
			if err != nil {
				for _, k := range storedKeys {
					_ = store.Remove(ListingsBucket, k)
				}
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload images. Please try again."})
			}

			storedKeys = append(storedKeys, key)
			imageURLs = append(imageURLs, store.PublicURL(ListingsBucket, key))
		}

		l, err := listingService.Create(c.Context(), userID, req, price, imageURLs)
		if err != nil {
			for _, k := range storedKeys {
				_ = store.Remove(ListingsBucket, k)
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload listing. Please try again."})
		}

		return c.Status(http.StatusCreated).JSON(toListingResponse(l))
	}
}

// MyListingsHandler returns the caller's own listings for the profile view.
func MyListingsHandler(listingService *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(listingService.ListByOwner(c.Context(), currentUserID(c)))
	}
}
