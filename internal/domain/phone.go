package domain

import "strings"

// ErrInvalidPhone is returned when a phone number does not have 10 or 11 digits.
var ErrInvalidPhone = NewValidationError("phone must have 10 or 11 digits")

// Phone is a Brazilian phone number stored as digits only (area code + number).
type Phone struct {
	digits string
}

// NewPhone strips every non-digit and validates the remaining length.
func NewPhone(s string) (Phone, error) {
	digits := onlyDigits(s)
	if len(digits) != 10 && len(digits) != 11 {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{digits: digits}, nil
}

// ParsePhone is the optional variant of NewPhone: blank input yields nil.
func ParsePhone(s string) (*Phone, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	p, err := NewPhone(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IsValidPhone reports whether s normalizes to a valid phone number.
func IsValidPhone(s string) bool {
	_, err := NewPhone(s)
	return err == nil
}

// String returns the canonical digits-only form.
func (p Phone) String() string { return p.digits }

// Equals compares by normalized digits.
func (p Phone) Equals(other Phone) bool { return p.digits == other.digits }

// Format renders "(11) 99999-9999" for mobile numbers and "(11) 9999-9999"
// for landlines.
func (p Phone) Format() string {
	d := p.digits
	if len(d) < 10 {
		return d
	}
	split := len(d) - 4
	return "(" + d[:2] + ") " + d[2:split] + "-" + d[split:]
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
