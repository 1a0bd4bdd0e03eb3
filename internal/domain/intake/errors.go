package intake

import (
	"fmt"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// Patient resolution errors
var (
	// ErrPatientNameRequired is returned when neither a patient ID nor a name is given.
	ErrPatientNameRequired = domain.NewDomainRuleError("patient name is required")

	// ErrUserIDRequired is returned when a new patient must be created without an owning user.
	ErrUserIDRequired = domain.NewDomainRuleError("user ID is required to create a patient")
)

// ServiceError wraps errors from the intake service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "resolve_patient")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("intake %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("intake %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. Domain errors are returned
// unchanged so that callers can keep branching on their kind and field.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidationError(err) || domain.IsDomainRuleError(err) {
		return err
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
