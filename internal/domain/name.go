package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name validation errors
var (
	ErrEmptyName   = NewValidationError("name cannot be empty")
	ErrNameTooLong = NewValidationError("name must be at most 255 characters long")
)

const maxNameLength = 255

// Name is a person's name, trimmed, with inner whitespace collapsed and
// each word title-cased.
type Name struct {
	value string
}

// NewName normalizes and validates a name.
func NewName(s string) (Name, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return Name{}, ErrEmptyName
	}
	for i, w := range words {
		words[i] = titleCase(w)
	}
	value := strings.Join(words, " ")
	if utf8.RuneCountInString(value) > maxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: value}, nil
}

// ParseName is the optional variant of NewName: blank input yields nil.
func ParseName(s string) (*Name, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := NewName(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// String returns the normalized name.
func (n Name) String() string { return n.value }

// Equals compares names case-insensitively after normalization.
func (n Name) Equals(other Name) bool { return strings.EqualFold(n.value, other.value) }

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
