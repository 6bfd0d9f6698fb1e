// Package validation holds the declarative field rules applied before any
// write. Validators are pure and synchronous: they perform no I/O, return
// the trimmed/normalized value, and report only the first violated rule.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"basera-backend/internal/models"
)

// International format with optional + and 10-15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError reports the first violated rule for a candidate record.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fail(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// Email validates and normalizes an email address.
func Email(email string) (string, *FieldError) {
	email = strings.TrimSpace(email)
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return "", fail("email", "Invalid email address")
	}
	return email, nil
}

// Password checks length bounds. The value is never trimmed.
func Password(password string) *FieldError {
	if len(password) < 6 {
		return fail("password", "Password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fail("password", "Password is too long")
	}
	return nil
}

// FullName validates and trims a person's display name.
func FullName(name string) (string, *FieldError) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return "", fail("full_name", "Name must be at least 2 characters")
	}
	if len(name) > 200 {
		return "", fail("full_name", "Name is too long")
	}
	return name, nil
}

// Phone validates and trims a phone number against the international format.
func Phone(field, phone string) (string, *FieldError) {
	phone = strings.TrimSpace(phone)
	if len(phone) > 20 || !phoneRegex.MatchString(phone) {
		return "", fail(field, "Invalid phone number format")
	}
	return phone, nil
}

// Address validates and trims a postal address.
func Address(address string) (string, *FieldError) {
	address = strings.TrimSpace(address)
	if len(address) < 5 {
		return "", fail("address", "Address must be at least 5 characters")
	}
	if len(address) > 500 {
		return "", fail("address", "Address is too long")
	}
	return address, nil
}

// MessageBody validates and trims a chat message.
func MessageBody(body string) (string, *FieldError) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fail("body", "Message cannot be empty")
	}
	if len(body) > 2000 {
		return "", fail("body", "Message too long (max 2000 characters)")
	}
	return body, nil
}

// Occupants validates the occupant count for a booking.
func Occupants(n int) *FieldError {
	if n < 1 {
		return fail("occupants", "At least 1 occupant required")
	}
	if n > 50 {
		return fail("occupants", "Too many occupants")
	}
	return nil
}

// Signup validates a registration request and returns the normalized copy.
func Signup(req models.RegisterRequest) (models.RegisterRequest, *FieldError) {
	var ferr *FieldError
	if req.FullName, ferr = FullName(req.FullName); ferr != nil {
		return req, ferr
	}
	if req.Email, ferr = Email(req.Email); ferr != nil {
		return req, ferr
	}
	if req.PhoneNumber, ferr = Phone("phone_number", req.PhoneNumber); ferr != nil {
		return req, ferr
	}
	if req.Address, ferr = Address(req.Address); ferr != nil {
		return req, ferr
	}
	if ferr = Password(req.Password); ferr != nil {
		return req, ferr
	}
	if req.Password != req.ConfirmPassword {
		return req, fail("confirm_password", "Passwords don't match")
	}
	return req, nil
}

// Login validates a sign-in request.
func Login(req models.LoginRequest) (models.LoginRequest, *FieldError) {
	var ferr *FieldError
	if req.Email, ferr = Email(req.Email); ferr != nil {
		return req, ferr
	}
	if ferr = Password(req.Password); ferr != nil {
		return req, ferr
	}
	return req, nil
}

// ProfileUpdate validates a profile edit.
func ProfileUpdate(req models.UpdateProfileRequest) (models.UpdateProfileRequest, *FieldError) {
	var ferr *FieldError
	if req.FullName, ferr = FullName(req.FullName); ferr != nil {
		return req, ferr
	}
	if req.PhoneNumber, ferr = Phone("phone_number", req.PhoneNumber); ferr != nil {
		return req, ferr
	}
	if req.Address, ferr = Address(req.Address); ferr != nil {
		return req, ferr
	}
	return req, nil
}

// Listing validates a listing submission. Price arrives as the raw text of
// the form field and must parse as a positive number.
func Listing(req models.CreateListingRequest) (models.CreateListingRequest, float64, *FieldError) {
	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 5 {
		return req, 0, fail("title", "Title must be at least 5 characters")
	}
	if len(req.Title) > 100 {
		return req, 0, fail("title", "Title is too long")
	}

	req.Description = strings.TrimSpace(req.Description)
	if len(req.Description) < 20 {
		return req, 0, fail("description", "Description must be at least 20 characters")
	}
	if len(req.Description) > 2000 {
		return req, 0, fail("description", "Description is too long")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil || price <= 0 {
		return req, 0, fail("price", "Price must be a positive number")
	}
	if price > 1_000_000_000 {
		return req, 0, fail("price", "Price is too high")
	}

	var ferr *FieldError
	if req.ContactPhone, ferr = Phone("contact_phone", req.ContactPhone); ferr != nil {
		return req, 0, ferr
	}

	valid := false
	for _, c := range models.ListingCategories {
		if req.Category == c {
			valid = true
			break
		}
	}
	if !valid {
		return req, 0, fail("category", "Please select a valid category")
	}

	return req, price, nil
}

// ListingImageCount rejects adding more images once the cap is reached.
// The staged set is left untouched by the caller on error.
func ListingImageCount(staged, adding int) *FieldError {
	if staged+adding > models.MaxListingImages {
		return fail("images", "You can upload maximum 5 images per listing")
	}
	return nil
}

// BookingInfo validates the contact step of the booking wizard.
func BookingInfo(contactName, contactPhone string, occupants int) (string, string, *FieldError) {
	name, ferr := FullName(contactName)
	if ferr != nil {
		return "", "", fail("contact_name", ferr.Message)
	}
	phone, ferr := Phone("contact_phone", contactPhone)
	if ferr != nil {
		return "", "", ferr
	}
	if ferr = Occupants(occupants); ferr != nil {
		return "", "", ferr
	}
	return name, phone, nil
}
