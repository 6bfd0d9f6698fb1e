package handlers

import (
	"errors"
	"net/http"
	"time"

	"basera-backend/internal/booking"
	"basera-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Wizards holds the booking sessions in progress.
var Wizards = booking.NewManager()

type wizardResponse struct {
	ID           string             `json:"id"`
	ListingID    string             `json:"listing_id"`
	ListingTitle string             `json:"listing_title"`
	Step         booking.Step       `json:"step"`
	RentalType   booking.RentalType `json:"rental_type"`
	FromDate     string             `json:"from_date,omitempty"`
	ToDate       string             `json:"to_date,omitempty"`
	Quote        booking.Quote      `json:"quote"`
}

func toWizardResponse(w *booking.Wizard) wizardResponse {
	resp := wizardResponse{
		ID:           w.ID,
		ListingID:    w.ListingID,
		ListingTitle: w.ListingTitle,
		Step:         w.Step,
		RentalType:   w.RentalType,
		Quote:        w.Quote(),
	}
	if !w.FromDate.IsZero() {
		resp.FromDate = w.FromDate.Format("2006-01-02")
	}
	if !w.ToDate.IsZero() {
		resp.ToDate = w.ToDate.Format("2006-01-02")
	}
	return resp
}

func wizardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrSignInRequired):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "redirect": "/auth"})
	case errors.Is(err, booking.ErrNoSession):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// OpenWizardHandler starts a booking flow for a listing. Works without
// authentication; the dates step enforces sign-in.
func OpenWizardHandler(listingService *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ListingID string `json:"listing_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.ListingID == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "listing_id required"})
		}

		l, err := listingService.GetByID(c.Context(), req.ListingID)
		if err != nil {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}

		w := Wizards.Open(l.ID, l.Title, l.Price, currentUserID(c))
		return c.Status(http.StatusCreated).JSON(toWizardResponse(w))
	}
}

// SelectTypeHandler handles type -> dates.
func SelectTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			RentalType booking.RentalType `json:"rental_type"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		return mutateWizard(c, func(w *booking.Wizard) error {
			return w.SelectType(req.RentalType)
		})
	}
}

// SetDatesHandler records the date range and attempts dates -> info.
func SetDatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			FromDate string `json:"from_date"`
			ToDate   string `json:"to_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		var from, to time.Time
		var err error
		if req.FromDate != "" {
			if from, err = time.Parse("2006-01-02", req.FromDate); err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from_date"})
			}
		}
		if req.ToDate != "" {
			if to, err = time.Parse("2006-01-02", req.ToDate); err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to_date"})
			}
		}

		return mutateWizard(c, func(w *booking.Wizard) error {
			// The session may have been opened anonymously and the
			// user signed in since.
			if w.UserID == "" {
				w.UserID = currentUserID(c)
			}
			if err := w.SetDates(from, to, time.Now()); err != nil {
				return err
			}
			return w.ConfirmDates()
		})
	}
}

// SetInfoHandler handles info -> payment.
func SetInfoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ContactName  string `json:"contact_name"`
			ContactPhone string `json:"contact_phone"`
			Occupants    int    `json:"occupants"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		return mutateWizard(c, func(w *booking.Wizard) error {
			return w.SetInfo(req.ContactName, req.ContactPhone, req.Occupants)
		})
	}
}

// PayHandler handles payment -> success: the simulated gateway delay,
// then the pending booking record. On a write failure the wizard stays
// on payment. The wizard is only ever touched under the session lock:
// the fields the insert needs are snapshotted first, the slow part runs
// unlocked, and the success transition is applied through the manager
// again, so a concurrent back/close on the same session cannot race.
func PayHandler(bookingService *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var listingID, userID string
		var fromDate, toDate time.Time
		err := Wizards.Mutate(id, func(w *booking.Wizard) error {
			if w.Step != booking.StepPayment {
				return booking.ErrWrongStep
			}
			listingID, userID = w.ListingID, w.UserID
			fromDate, toDate = w.FromDate, w.ToDate
			return nil
		})
		if err != nil {
			return wizardError(c, err)
		}

		b, err := bookingService.Pay(c.Context(), listingID, userID, fromDate, toDate)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking. Please try again."})
		}

		// The session may have been walked back or closed while the
		// payment ran; Complete refuses anything but the payment step.
		var resp wizardResponse
		err = Wizards.Mutate(id, func(w *booking.Wizard) error {
			if err := w.Complete(); err != nil {
				return err
			}
			resp = toWizardResponse(w)
			return nil
		})
		if err != nil {
			return wizardError(c, err)
		}

		return c.JSON(fiber.Map{
			"wizard":  resp,
			"booking": b,
		})
	}
}

// BackHandler walks one explicit Back edge.
func BackHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return mutateWizard(c, func(w *booking.Wizard) error {
			return w.Back()
		})
	}
}

// CloseWizardHandler closes the dialog in any state and resets all fields.
func CloseWizardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		Wizards.Close(c.Params("id"))
		return c.SendStatus(http.StatusNoContent)
	}
}

// MyBookingsHandler lists the caller's bookings, newest first.
func MyBookingsHandler(bookingService *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bookings, err := bookingService.ListByUser(c.Context(), currentUserID(c))
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
		}
		return c.JSON(bookings)
	}
}

// mutateWizard applies fn and builds the response in the same critical
// section, so the state it reports is the state fn left behind.
func mutateWizard(c *fiber.Ctx, fn func(*booking.Wizard) error) error {
	var resp wizardResponse
	err := Wizards.Mutate(c.Params("id"), func(w *booking.Wizard) error {
		if err := fn(w); err != nil {
			return err
		}
		resp = toWizardResponse(w)
		return nil
	})
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(resp)
}
