package booking

import (
	"math"
	"time"
)

type RentalType string

const (
	ShortTerm RentalType = "short-term"
	LongTerm  RentalType = "long-term"
)

// DepositRate is the share of the total due at booking time.
const DepositRate = 0.3

// Quote is recomputed from current state on every request, never stored.
// Given the same (rental type, dates, price) it is deterministic.
type Quote struct {
	Nights  int     `json:"nights,omitempty"`
	Months  int     `json:"months,omitempty"`
	Total   float64 `json:"total"`
	Deposit float64 `json:"deposit"`
}

// Nights counts billable nights between two dates: ceil of the elapsed
// days, 0 when either date is missing or the range is inverted.
func Nights(from, to time.Time) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	n := int(math.Ceil(to.Sub(from).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// Months counts billable months between two dates: calendar month
// difference floored at 1, 0 when either date is missing.
func Months(from, to time.Time) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	m := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if m < 1 {
		return 1
	}
	return m
}

// ComputeQuote prices a stay. Short-term rentals bill per night,
// long-term per calendar month.
func ComputeQuote(rt RentalType, from, to time.Time, price float64) Quote {
	var q Quote
	if rt == LongTerm {
		q.Months = Months(from, to)
		q.Total = float64(q.Months) * price
	} else {
		q.Nights = Nights(from, to)
		q.Total = float64(q.Nights) * price
	}
	q.Deposit = q.Total * DepositRate
	return q
}
