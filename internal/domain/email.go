package domain

import (
	"regexp"
	"strings"
)

// ErrInvalidEmail is returned when an email address is malformed.
var ErrInvalidEmail = NewValidationError("invalid email format")

const maxEmailLength = 254

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a trimmed, lower-cased email address.
type Email struct {
	address string
}

// NewEmail normalizes and validates an email address.
func NewEmail(s string) (Email, error) {
	address := strings.ToLower(strings.TrimSpace(s))
	if len(address) > maxEmailLength || !emailRegex.MatchString(address) {
		return Email{}, ErrInvalidEmail
	}
	return Email{address: address}, nil
}

// ParseEmail is the optional variant of NewEmail: blank input yields nil.
func ParseEmail(s string) (*Email, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	e, err := NewEmail(s)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// IsValidEmail reports whether s is a valid email address.
func IsValidEmail(s string) bool {
	_, err := NewEmail(s)
	return err == nil
}

// String returns the normalized address.
func (e Email) String() string { return e.address }

// Equals compares by normalized address.
func (e Email) Equals(other Email) bool { return e.address == other.address }
