// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific domain error wraps exactly one of them, so
// callers can branch with errors.Is without matching on messages.
var (
	// ErrValidation is returned when a primitive value is malformed
	// (bad email, phone, time, money, procedure or payment type shape).
	ErrValidation = errors.New("validation failed")

	// ErrDomainRule is returned when values are well-formed but a business
	// rule is violated (currency mismatch, double payment, late cancellation).
	ErrDomainRule = errors.New("domain rule violated")
)

// kindError is a sentinel error that carries its own message and unwraps
// to one of the error kinds above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NewValidationError creates a sentinel of kind ErrValidation with its own message.
func NewValidationError(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// NewDomainRuleError creates a sentinel of kind ErrDomainRule with its own message.
func NewDomainRuleError(msg string) error {
	return &kindError{kind: ErrDomainRule, msg: msg}
}

// IsValidationError reports whether err is a malformed-input failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDomainRuleError reports whether err is a business rule violation.
func IsDomainRuleError(err error) bool {
	return errors.Is(err, ErrDomainRule)
}

// FieldError attaches the offending field name to a domain error.
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Err: err}
}
