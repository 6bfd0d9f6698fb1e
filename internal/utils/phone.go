package utils

import (
	"net/url"
	"strings"
)

// DigitsOnly strips everything but digits from a phone number, the form
// wa.me expects.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link with a prefilled inquiry about
// the given listing title.
func WhatsAppLink(phone, listingTitle string) string {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	msg := url.QueryEscape("Hi, I'm interested in your listing: " + listingTitle)
	return "https://wa.me/" + digits + "?text=" + msg
}

// TelLink builds a tel: link for the call action.
func TelLink(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	return "tel:" + strings.TrimSpace(phone)
}
