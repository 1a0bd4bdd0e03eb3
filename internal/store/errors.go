package store

import (
	"errors"
	"fmt"
)

// Base store errors. Entity-specific errors wrap one of these.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInvalidEntity covers both an entity rejected before writing and a
	// stored row that no longer rebuilds into a valid entity.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Patient errors
var (
	ErrPatientNotFound = fmt.Errorf("%w: patient", ErrNotFound)
	ErrPatientExists   = fmt.Errorf("%w: patient", ErrDuplicate)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err wraps ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which storage operation failed on which entity. It is
// used for infrastructure failures; expected outcomes such as
// ErrPatientNotFound are returned bare.
type StoreError struct {
	Entity    string
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s failed", e.Operation, e.Entity)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Operation, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity and operation it came from.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
