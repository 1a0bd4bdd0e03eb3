package intake

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/scheduling"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/redact"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/validation"
)

// PatientData identifies the patient of an incoming appointment.
type PatientData struct {
	PatientID    string
	PatientName  string
	PatientEmail string
	PatientPhone string
	UserID       string
}

// PatientDataFrom extracts the patient part of a raw appointment record.
func PatientDataFrom(data scheduling.AppointmentData) PatientData {
	return PatientData{
		PatientID:    data.PatientID,
		PatientName:  data.PatientName,
		PatientEmail: data.PatientEmail,
		PatientPhone: data.PatientPhone,
		UserID:       data.UserID,
	}
}

// Service resolves and maintains the patients appointments refer to.
type Service interface {
	// ResolvePatient returns the ID of the patient data refers to, creating
	// the patient when no existing one matches.
	ResolvePatient(ctx context.Context, data PatientData) (string, error)

	// UpdateLastVisit records a visit on an existing patient. It is a no-op
	// when either argument is missing or the patient does not exist.
	UpdateLastVisit(ctx context.Context, patientID string, visit *domain.Date) error

	// ValidatePatientData runs the non-failing patient field checks.
	ValidatePatientData(fields validation.PatientFields) validation.Result
}

// Option configures the intake service.
type Option func(*serviceImpl)

// WithClock replaces the clock used for last-visit checks.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

// serviceImpl implements the Service interface
type serviceImpl struct {
	repo      PatientRepository
	validator *validation.PatientValidator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new intake Service.
// It returns an error if the repository is nil.
func NewService(repo PatientRepository, logger *slog.Logger, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		repo:      repo,
		validator: validation.NewPatientValidator(),
		logger:    logger.With("component", "intake_service"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ResolvePatient applies, in order:
//  1. an explicit patient ID is returned unchanged without a lookup;
//  2. a name is required;
//  3. a patient owned by data.UserID matching the name (or email) is
//     enriched with any supplied email and phone, persisted and returned;
//  4. otherwise a new patient owned by data.UserID is created.
func (s *serviceImpl) ResolvePatient(ctx context.Context, data PatientData) (string, error) {
	if id := strings.TrimSpace(data.PatientID); id != "" {
		return id, nil
	}

	name := strings.TrimSpace(data.PatientName)
	if name == "" {
		return "", &domain.FieldError{Field: "patient_name", Err: ErrPatientNameRequired}
	}
	email := strings.TrimSpace(data.PatientEmail)
	phone := strings.TrimSpace(data.PatientPhone)
	userID := strings.TrimSpace(data.UserID)

	existing, err := s.repo.FindByNameOrEmail(ctx, name, email, userID)
	switch {
	case err == nil && existing != nil:
		return s.enrich(ctx, existing, email, phone)
	case err != nil && !store.IsNotFoundError(err):
		s.logger.Error("failed to look up patient",
			"error", redact.Error(err))
		return "", NewServiceError("resolve_patient", "failed to look up patient", err)
	}

	return s.create(ctx, name, email, phone, userID)
}

func (s *serviceImpl) enrich(ctx context.Context, p *domain.Patient, email, phone string) (string, error) {
	if email == "" && phone == "" {
		return p.ID(), nil
	}

	var update domain.PatientUpdate
	if email != "" {
		update.Email = &email
	}
	if phone != "" {
		update.Phone = &phone
	}
	if err := p.Update(update); err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to save enriched patient",
			"error", redact.Error(err),
			"patient_id", p.ID())
		return "", NewServiceError("resolve_patient", "failed to save patient", err)
	}

	s.logger.Info("enriched existing patient",
		"patient_id", p.ID(),
		"email", redact.String(email),
		"phone", redact.String(phone))
	return p.ID(), nil
}

func (s *serviceImpl) create(ctx context.Context, name, email, phone, userID string) (string, error) {
	if userID == "" {
		return "", &domain.FieldError{Field: "user_id", Err: ErrUserIDRequired}
	}

	p, err := domain.NewPatient(domain.PatientParams{
		Name:   name,
		Email:  email,
		Phone:  phone,
		UserID: userID,
	})
	if err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create patient",
			"error", redact.Error(err),
			"user_id", userID)
		return "", NewServiceError("resolve_patient", "failed to create patient", err)
	}

	s.logger.Info("created patient",
		"patient_id", p.ID(),
		"user_id", userID)
	return p.ID(), nil
}

// UpdateLastVisit implements the Service interface
func (s *serviceImpl) UpdateLastVisit(ctx context.Context, patientID string, visit *domain.Date) error {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" || visit == nil {
		return nil
	}

	p, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("skipping last visit update for unknown patient",
				"patient_id", patientID)
			return nil
		}
		s.logger.Error("failed to load patient",
			"error", redact.Error(err),
			"patient_id", patientID)
		return NewServiceError("update_last_visit", "failed to load patient", err)
	}
	if p == nil {
		return nil
	}

	if err := p.UpdateLastVisit(*visit, s.now()); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to save last visit",
			"error", redact.Error(err),
			"patient_id", patientID)
		return NewServiceError("update_last_visit", "failed to save patient", err)
	}
	return nil
}

// ValidatePatientData implements the Service interface
func (s *serviceImpl) ValidatePatientData(fields validation.PatientFields) validation.Result {
	return s.validator.Validate(fields)
}
