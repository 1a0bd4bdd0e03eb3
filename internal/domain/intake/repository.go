package intake

import (
	"context"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// PatientRepository defines the persistence operations the intake service needs.
// It is satisfied by store.PatientStore implementations.
type PatientRepository interface {
	// FindByID retrieves a patient by ID.
	// Returns an error satisfying store.IsNotFoundError when nothing matches.
	FindByID(ctx context.Context, id string) (*domain.Patient, error)

	// FindByNameOrEmail retrieves a patient owned by userID by name, or by
	// email when one is given. Patients of other users never match.
	// Returns an error satisfying store.IsNotFoundError when nothing matches.
	FindByNameOrEmail(ctx context.Context, name, email, userID string) (*domain.Patient, error)

	// Create saves a new patient.
	Create(ctx context.Context, patient *domain.Patient) error

	// Update saves changes to an existing patient.
	Update(ctx context.Context, patient *domain.Patient) error
}
