package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/platform/logger"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
)

const patientColumns = `id, user_id, name, email, phone, to_char(last_visit, 'YYYY-MM-DD'), created_at, updated_at`

// PostgresPatientStore implements the store.PatientStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPatientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPatientStore creates a new PostgreSQL implementation of the PatientStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPatientStore(db store.DBTX, logger *slog.Logger) *PostgresPatientStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPatientStore{
		db:     db,
		logger: logger.With(slog.String("component", "patient_store")),
	}
}

// Ensure PostgresPatientStore implements store.PatientStore interface
var _ store.PatientStore = (*PostgresPatientStore)(nil)

// FindByID implements store.PatientStore.FindByID
func (s *PostgresPatientStore) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	patient, err := scanPatient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("patient not found", slog.String("patient_id", id))
			return nil, store.ErrPatientNotFound
		}
		log.Error("failed to get patient by ID",
			slog.String("error", err.Error()),
			slog.String("patient_id", id))
		return nil, store.NewStoreError("patient", "find", MapError(err))
	}
	return patient, nil
}

// FindByNameOrEmail implements store.PatientStore.FindByNameOrEmail
// Names are compared after the same normalization the domain applies, so
// "ana  souza" finds "Ana Souza". Only patients owned by userID are
// considered and the oldest matching one wins.
func (s *PostgresPatientStore) FindByNameOrEmail(
	ctx context.Context,
	name, email, userID string,
) (*domain.Patient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lookupName := strings.TrimSpace(name)
	if n, err := domain.NewName(name); err == nil {
		lookupName = n.String()
	}
	lookupEmail := strings.ToLower(strings.TrimSpace(email))

	query := `SELECT ` + patientColumns + ` FROM patients
		WHERE (lower(name) = lower($1) OR ($2 <> '' AND email = $2))
		  AND user_id = $3
		ORDER BY created_at ASC
		LIMIT 1`
	patient, err := scanPatient(s.db.QueryRowContext(ctx, query, lookupName, lookupEmail, strings.TrimSpace(userID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPatientNotFound
		}
		log.Error("failed to look up patient", slog.String("error", err.Error()))
		return nil, store.NewStoreError("patient", "find", MapError(err))
	}
	return patient, nil
}

// Create implements store.PatientStore.Create
// Returns store.ErrPatientExists if the ID is already taken.
func (s *PostgresPatientStore) Create(ctx context.Context, patient *domain.Patient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patient.Validate(); err != nil {
		log.Warn("patient validation failed during create",
			slog.String("error", err.Error()),
			slog.String("patient_id", patient.ID()))
		return err
	}

	query := `
		INSERT INTO patients (id, user_id, name, email, phone, last_visit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
	`
	j := patient.ToJSON()
	_, err := s.db.ExecContext(ctx, query,
		j.ID,
		j.UserID,
		j.Name,
		nullable(j.Email),
		nullable(j.Phone),
		nullable(j.LastVisit),
		patient.CreatedAt(),
		patient.UpdatedAt(),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrPatientExists, err)
		}
		log.Error("failed to create patient",
			slog.String("error", err.Error()),
			slog.String("patient_id", patient.ID()))
		return store.NewStoreError("patient", "create", MapError(err))
	}

	log.Debug("patient created",
		slog.String("patient_id", patient.ID()),
		slog.String("user_id", patient.UserID()))
	return nil
}

// Update implements store.PatientStore.Update
// Returns store.ErrPatientNotFound if the patient does not exist.
func (s *PostgresPatientStore) Update(ctx context.Context, patient *domain.Patient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patient.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, last_visit = $4::date, updated_at = $5
		WHERE id = $6
	`
	j := patient.ToJSON()
	result, err := s.db.ExecContext(ctx, query,
		j.Name,
		nullable(j.Email),
		nullable(j.Phone),
		nullable(j.LastVisit),
		patient.UpdatedAt(),
		j.ID,
	)
	if err != nil {
		log.Error("failed to update patient",
			slog.String("error", err.Error()),
			slog.String("patient_id", patient.ID()))
		return store.NewStoreError("patient", "update", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrPatientNotFound); err != nil {
		return err
	}

	log.Debug("patient updated", slog.String("patient_id", patient.ID()))
	return nil
}

// WithTx implements store.PatientStore.WithTx
func (s *PostgresPatientStore) WithTx(tx *sql.Tx) store.PatientStore {
	return &PostgresPatientStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanPatient(row *sql.Row) (*domain.Patient, error) {
	var (
		rec                     domain.PatientJSON
		email, phone, lastVisit sql.NullString
		createdAt, updatedAt    time.Time
	)
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&email,
		&phone,
		&lastVisit,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	rec.Email = textOrNil(email)
	rec.Phone = textOrNil(phone)
	rec.LastVisit = textOrNil(lastVisit)
	rec.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
	rec.UpdatedAt = updatedAt.UTC().Format(time.RFC3339Nano)

	patient, err := domain.PatientFromJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: patient %s: %v", store.ErrInvalidEntity, rec.ID, err)
	}
	return patient, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func textOrNil(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
