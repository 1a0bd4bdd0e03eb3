package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/intake"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/scheduling"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/redact"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/validation"
)

// Accepted is an input record that became an appointment.
type Accepted struct {
	Index         int                    `json:"index"`
	Appointment   domain.AppointmentJSON `json:"appointment"`
	ReceivedValue float64                `json:"received_value"`
}

// Rejected is an input record that failed validation or a domain rule.
type Rejected struct {
	Index  int               `json:"index"`
	Errors map[string]string `json:"errors"`
}

// Report is the importer output.
type Report struct {
	Accepted []Accepted `json:"accepted"`
	Rejected []Rejected `json:"rejected"`
}

// Importer turns raw appointment records into appointments, resolving their
// patients through a patient store. When db is set, each record runs in its
// own transaction.
type Importer struct {
	patients  store.PatientStore
	db        *sql.DB
	scheduler scheduling.Service
	validator *validation.AppointmentValidator
	base      *slog.Logger
	logger    *slog.Logger
	now       func() time.Time
}

// draftPatientID stands in for a patient that is not resolved yet, so a
// record can be checked against the appointment rules before any patient
// is created or changed.
const draftPatientID = "unresolved"

// NewImporter creates an Importer. db may be nil for stores without transactions.
func NewImporter(
	patients store.PatientStore,
	db *sql.DB,
	params *scheduling.Params,
	logger *slog.Logger,
) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		patients:  patients,
		db:        db,
		scheduler: scheduling.NewServiceWithParams(params),
		validator: validation.NewAppointmentValidator(
			validation.WithPastDates(params.AllowPastDates),
			validation.WithClock(params.Now),
		),
		base:   logger,
		logger: logger.With("component", "importer"),
		now:    params.Now,
	}
}

// Run imports every record. Records that fail validation or a domain rule
// are reported as rejected; any other failure aborts the run.
func (im *Importer) Run(ctx context.Context, records []scheduling.AppointmentData) (*Report, error) {
	report := &Report{Accepted: []Accepted{}, Rejected: []Rejected{}}

	for i, rec := range records {
		if res := im.validator.Validate(rec); !res.IsValid {
			im.logger.Debug("record failed validation", "index", i, "fields", len(res.Errors))
			report.Rejected = append(report.Rejected, Rejected{Index: i, Errors: res.Errors})
			continue
		}

		accepted, err := im.importRecord(ctx, i, rec)
		if err != nil {
			if domain.IsValidationError(err) || domain.IsDomainRuleError(err) {
				im.logger.Debug("record rejected by domain rule", "index", i, "error", redact.Error(err))
				report.Rejected = append(report.Rejected, Rejected{Index: i, Errors: validation.FromError(err).Errors})
				continue
			}
			return nil, fmt.Errorf("failed to import record %d: %w", i, err)
		}
		report.Accepted = append(report.Accepted, *accepted)
	}

	im.logger.Info("import finished",
		"accepted", len(report.Accepted),
		"rejected", len(report.Rejected))
	return report, nil
}

func (im *Importer) importRecord(ctx context.Context, index int, rec scheduling.AppointmentData) (*Accepted, error) {
	var accepted *Accepted
	draft := rec
	if strings.TrimSpace(draft.PatientID) == "" {
		draft.PatientID = draftPatientID
	}
	if _, err := im.scheduler.BuildAppointment(draft); err != nil {
		return nil, err
	}

	err := im.withPatients(ctx, func(ctx context.Context, patients store.PatientStore) error {
		svc, err := intake.NewService(patients, im.base, intake.WithClock(im.now))
		if err != nil {
			return err
		}

		patientID, err := svc.ResolvePatient(ctx, intake.PatientDataFrom(rec))
		if err != nil {
			return err
		}
		rec.PatientID = patientID

		appt, err := im.scheduler.BuildAppointment(rec)
		if err != nil {
			return err
		}

		// Only visits that already happened count as the patient's last visit.
		if visit := appt.Date(); !visit.After(domain.Today(im.now())) {
			if err := svc.UpdateLastVisit(ctx, patientID, &visit); err != nil {
				return err
			}
		}

		received, err := appt.CalculateReceivedValue()
		if err != nil {
			return err
		}
		accepted = &Accepted{
			Index:         index,
			Appointment:   appt.ToJSON(),
			ReceivedValue: received.Float64(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (im *Importer) withPatients(
	ctx context.Context,
	fn func(ctx context.Context, patients store.PatientStore) error,
) error {
	if im.db == nil {
		return fn(ctx, im.patients)
	}
	return store.RunInTransaction(ctx, im.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, im.patients.WithTx(tx))
	})
}

// readRecords decodes a JSON array of raw appointment records. Numbers are
// kept as json.Number so that value coercion sees the original text.
func readRecords(r io.Reader) ([]scheduling.AppointmentData, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []scheduling.AppointmentData
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode input records: %w", err)
	}
	return records, nil
}

// writeReport encodes the report as indented JSON.
func writeReport(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
