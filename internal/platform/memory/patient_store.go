// Package memory provides an in-process implementation of the patient store,
// used when no database is configured and in tests.
package memory

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
)

// PatientStore implements store.PatientStore in memory. It is safe for
// concurrent use. Stored patients are copied on the way in and out.
type PatientStore struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Patient
	order []string
}

// Ensure PatientStore implements store.PatientStore interface
var _ store.PatientStore = (*PatientStore)(nil)

// NewPatientStore creates an empty in-memory patient store.
func NewPatientStore() *PatientStore {
	return &PatientStore{byID: make(map[string]*domain.Patient)}
}

// FindByID implements store.PatientStore.FindByID
func (s *PatientStore) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, store.ErrPatientNotFound
	}
	return clonePatient(p), nil
}

// FindByNameOrEmail implements store.PatientStore.FindByNameOrEmail
func (s *PatientStore) FindByNameOrEmail(
	_ context.Context,
	name, email, userID string,
) (*domain.Patient, error) {
	lookupName := strings.TrimSpace(name)
	if n, err := domain.NewName(name); err == nil {
		lookupName = n.String()
	}
	lookupEmail := strings.ToLower(strings.TrimSpace(email))
	owner := strings.TrimSpace(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		p := s.byID[id]
		if p.UserID() != owner {
			continue
		}
		if strings.EqualFold(p.Name().String(), lookupName) {
			return clonePatient(p), nil
		}
		if lookupEmail != "" && p.Email() != nil && p.Email().String() == lookupEmail {
			return clonePatient(p), nil
		}
	}
	return nil, store.ErrPatientNotFound
}

// Create implements store.PatientStore.Create
func (s *PatientStore) Create(_ context.Context, patient *domain.Patient) error {
	if err := patient.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[patient.ID()]; exists {
		return store.ErrPatientExists
	}
	s.byID[patient.ID()] = clonePatient(patient)
	s.order = append(s.order, patient.ID())
	return nil
}

// Update implements store.PatientStore.Update
func (s *PatientStore) Update(_ context.Context, patient *domain.Patient) error {
	if err := patient.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[patient.ID()]; !exists {
		return store.ErrPatientNotFound
	}
	s.byID[patient.ID()] = clonePatient(patient)
	return nil
}

// WithTx implements store.PatientStore.WithTx. The in-memory store has no
// transactions, so it returns itself.
func (s *PatientStore) WithTx(_ *sql.Tx) store.PatientStore {
	return s
}

// Len returns the number of stored patients.
func (s *PatientStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// clonePatient copies a patient. Its value objects are immutable, so a
// shallow copy does not share mutable state.
func clonePatient(p *domain.Patient) *domain.Patient {
	cp := *p
	return &cp
}
