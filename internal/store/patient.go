package store

import (
	"context"
	"database/sql"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// PatientStore defines the interface for patient data persistence.
type PatientStore interface {
	// FindByID retrieves a patient by ID.
	// Returns ErrPatientNotFound if the patient does not exist.
	FindByID(ctx context.Context, id string) (*domain.Patient, error)

	// FindByNameOrEmail retrieves the oldest patient owned by userID whose
	// name matches case-insensitively, or whose email matches when email is
	// not empty. An empty userID matches nothing.
	// Returns ErrPatientNotFound if nothing matches.
	FindByNameOrEmail(ctx context.Context, name, email, userID string) (*domain.Patient, error)

	// Create saves a new patient.
	// Returns ErrPatientExists if the ID is already taken.
	Create(ctx context.Context, patient *domain.Patient) error

	// Update overwrites an existing patient with the given state.
	// Returns ErrPatientNotFound if the patient does not exist.
	Update(ctx context.Context, patient *domain.Patient) error

	// WithTx returns a new PatientStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PatientStore
}
