package domain

import (
	"strings"
	"unicode/utf8"
)

// Procedure validation errors
var (
	ErrEmptyProcedure   = NewValidationError("procedure cannot be empty")
	ErrProcedureTooLong = NewValidationError("procedure must be at most 255 characters long")
)

const maxProcedureLength = 255

// Procedure is the description of the clinical procedure performed.
type Procedure struct {
	value string
}

// NewProcedure trims and validates a procedure description.
func NewProcedure(s string) (Procedure, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return Procedure{}, ErrEmptyProcedure
	}
	if utf8.RuneCountInString(value) > maxProcedureLength {
		return Procedure{}, ErrProcedureTooLong
	}
	return Procedure{value: value}, nil
}

// String returns the trimmed description.
func (p Procedure) String() string { return p.value }

// Equals compares by value.
func (p Procedure) Equals(other Procedure) bool { return p.value == other.value }
