// Package booking implements the five-step booking wizard and its price
// quotes. The wizard is strictly linear with explicit Back edges; closing
// it resets every field.
package booking

import (
	"errors"
	"time"

	"basera-backend/internal/validation"
)

type Step string

const (
	StepType    Step = "type"
	StepDates   Step = "dates"
	StepInfo    Step = "info"
	StepPayment Step = "payment"
	StepSuccess Step = "success"
)

var (
	ErrNoSession      = errors.New("booking session not found")
	ErrWrongStep      = errors.New("action not valid in current step")
	ErrSignInRequired = errors.New("sign in required to book a property")
	ErrDatesRequired  = errors.New("please select both check-in and check-out dates")
	ErrPastCheckIn    = errors.New("check-in date cannot be in the past")
	ErrBadDateOrder   = errors.New("check-out date must be after check-in")
)

// Wizard holds one booking flow in progress. Not safe for concurrent use;
// the Manager serializes access.
type Wizard struct {
	ID           string
	ListingID    string
	ListingTitle string
	Price        float64

	// UserID is empty until the caller authenticates. The dates step
	// refuses to advance without it.
	UserID string

	Step         Step
	RentalType   RentalType
	FromDate     time.Time
	ToDate       time.Time
	ContactName  string
	ContactPhone string
	Occupants    int
}

// SelectType records the rental type and advances to date selection.
// Unconditional, per the flow design.
func (w *Wizard) SelectType(rt RentalType) error {
	if w.Step != StepType {
		return ErrWrongStep
	}
	if rt != LongTerm {
		rt = ShortTerm
	}
	w.RentalType = rt
	w.Step = StepDates
	return nil
}

// SetDates stores the chosen range, enforcing the picker's constraints:
// check-in not before today, check-out strictly after check-in.
func (w *Wizard) SetDates(from, to time.Time, now time.Time) error {
	if w.Step != StepDates {
		return ErrWrongStep
	}
	today := now.Truncate(24 * time.Hour)
	if !from.IsZero() && from.Before(today) {
		return ErrPastCheckIn
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return ErrBadDateOrder
	}
	w.FromDate = from
	w.ToDate = to
	return nil
}

// ConfirmDates advances dates -> info. Requires an authenticated user and
// both dates; otherwise the wizard stays on the dates step.
func (w *Wizard) ConfirmDates() error {
	if w.Step != StepDates {
		return ErrWrongStep
	}
	if w.UserID == "" {
		return ErrSignInRequired
	}
	if w.FromDate.IsZero() || w.ToDate.IsZero() {
		return ErrDatesRequired
	}
	w.Step = StepInfo
	return nil
}

// SetInfo validates the contact step and advances info -> payment.
func (w *Wizard) SetInfo(contactName, contactPhone string, occupants int) error {
	if w.Step != StepInfo {
		return ErrWrongStep
	}
	name, phone, ferr := validation.BookingInfo(contactName, contactPhone, occupants)
	if ferr != nil {
		return ferr
	}
	w.ContactName = name
	w.ContactPhone = phone
	w.Occupants = occupants
	w.Step = StepPayment
	return nil
}

// Complete marks the wizard successful after the booking record has been
// written. On a write failure the caller leaves the wizard in payment.
func (w *Wizard) Complete() error {
	if w.Step != StepPayment {
		return ErrWrongStep
	}
	w.Step = StepSuccess
	return nil
}

// Back walks one explicit Back edge. There is no backward transition out
// of success.
func (w *Wizard) Back() error {
	switch w.Step {
	case StepDates:
		w.Step = StepType
	case StepInfo:
		w.Step = StepDates
	case StepPayment:
		w.Step = StepInfo
	default:
		return ErrWrongStep
	}
	return nil
}

// Reset returns every field to its initial value. Used when the wizard is
// closed in any state.
func (w *Wizard) Reset() {
	w.Step = StepType
	w.RentalType = ShortTerm
	w.FromDate = time.Time{}
	w.ToDate = time.Time{}
	w.ContactName = ""
	w.ContactPhone = ""
	w.Occupants = 1
}

// Quote prices the current selection.
func (w *Wizard) Quote() Quote {
	return ComputeQuote(w.RentalType, w.FromDate, w.ToDate, w.Price)
}
