package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
)

// TestifyMockPatientStore is a mock of store.PatientStore for use with
// testify/mock. It also satisfies intake.PatientRepository.
type TestifyMockPatientStore struct {
	mock.Mock
}

// FindByID is a mock implementation of store.PatientStore.FindByID
func (m *TestifyMockPatientStore) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	args := m.Called(ctx, id)
	if patient, ok := args.Get(0).(*domain.Patient); ok {
		return patient, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByNameOrEmail is a mock implementation of store.PatientStore.FindByNameOrEmail
func (m *TestifyMockPatientStore) FindByNameOrEmail(
	ctx context.Context,
	name, email, userID string,
) (*domain.Patient, error) {
	args := m.Called(ctx, name, email, userID)
	if patient, ok := args.Get(0).(*domain.Patient); ok {
		return patient, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.PatientStore.Create
func (m *TestifyMockPatientStore) Create(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

// Update is a mock implementation of store.PatientStore.Update
func (m *TestifyMockPatientStore) Update(ctx context.Context, patient *domain.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

// WithTx is a mock implementation of store.PatientStore.WithTx
func (m *TestifyMockPatientStore) WithTx(tx *sql.Tx) store.PatientStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.PatientStore); ok {
		return ret
	}
	return m
}
