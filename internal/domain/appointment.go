package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Appointment limits
const (
	MaxClinicalEvolutionLength = 10000
	MaxNotesLength             = 5000

	// DefaultCancellationWindow is how far ahead of its scheduled start an
	// appointment must still be for a cancellation to be accepted.
	DefaultCancellationWindow = 24 * time.Hour
)

// Appointment-specific errors
var (
	ErrAppointmentIDEmpty        = NewDomainRuleError("appointment ID cannot be empty")
	ErrAppointmentPatientIDEmpty = NewDomainRuleError("appointment patient ID cannot be empty")
	ErrPaymentDateRequired       = NewDomainRuleError("payment date is required when appointment is paid")
	ErrAlreadyPaid               = NewDomainRuleError("appointment is already paid")
	ErrInvalidStatusTransition   = NewDomainRuleError("invalid appointment status transition")
	ErrCancellationWindow        = NewDomainRuleError("appointment is too close to its start to be cancelled")
	ErrPaidStatusMismatch        = NewDomainRuleError("a paid appointment must have status paid")
	ErrClinicalEvolutionTooLong  = NewValidationError("clinical evolution must be at most 10000 characters long")
	ErrNotesTooLong              = NewValidationError("notes must be at most 5000 characters long")
)

// AppointmentParams holds the canonical primitives an Appointment is built from.
// An empty ID is replaced by a new UUID; zero timestamps are set to now.
type AppointmentParams struct {
	ID                string
	PatientID         string
	ClinicID          string
	Date              string
	Time              string
	Procedure         string
	Value             float64
	Currency          string
	PaymentType       string
	PaymentPercentage *float64
	IsPaid            bool
	PaymentDate       string
	Status            string
	ClinicalEvolution *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AppointmentUpdate lists the mutable fields of an appointment. Nil fields
// are left untouched; an empty PaymentDate clears the payment date.
type AppointmentUpdate struct {
	ClinicID          *string
	Date              *string
	Time              *string
	Procedure         *string
	Value             *float64
	Currency          *string
	PaymentType       *string
	PaymentPercentage *float64
	IsPaid            *bool
	PaymentDate       *string
	Status            *string
	ClinicalEvolution *string
	Notes             *string
}

// Appointment is a scheduled procedure for a patient, with the billing
// information needed to compute what the clinic receives.
type Appointment struct {
	id                string
	patientID         string
	clinicID          string
	date              Date
	time              TimeOfDay
	procedure         Procedure
	value             Money
	paymentType       PaymentType
	isPaid            bool
	paymentDate       *Date
	status            AppointmentStatus
	clinicalEvolution *string
	notes             *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewAppointment builds and validates an Appointment. A paid appointment
// always ends up with status paid, whatever status was requested.
func NewAppointment(p AppointmentParams) (*Appointment, error) {
	now := time.Now().UTC()

	a := &Appointment{
		id:                p.ID,
		patientID:         strings.TrimSpace(p.PatientID),
		clinicID:          strings.TrimSpace(p.ClinicID),
		isPaid:            p.IsPaid,
		clinicalEvolution: optionalText(p.ClinicalEvolution),
		notes:             optionalText(p.Notes),
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}
	if a.id == "" {
		a.id = uuid.NewString()
	}
	if a.createdAt.IsZero() {
		a.createdAt = now
	}
	if a.updatedAt.IsZero() {
		a.updatedAt = a.createdAt
	}

	var err error
	if a.date, err = ParseDate(p.Date); err != nil {
		return nil, fieldError("date", err)
	}
	if a.time, err = NewTimeOfDay(p.Time); err != nil {
		return nil, fieldError("time", err)
	}
	if a.procedure, err = NewProcedure(p.Procedure); err != nil {
		return nil, fieldError("procedure", err)
	}
	currency, err := ParseCurrency(p.Currency)
	if err != nil {
		return nil, fieldError("currency", err)
	}
	if a.value, err = NewMoney(p.Value, currency); err != nil {
		return nil, fieldError("value", err)
	}
	if a.paymentType, err = NewPaymentType(p.PaymentType, p.PaymentPercentage); err != nil {
		return nil, fieldError("payment_type", err)
	}
	if a.paymentDate, err = ParseOptionalDate(p.PaymentDate); err != nil {
		return nil, fieldError("payment_date", err)
	}
	if a.status, err = ParseAppointmentStatus(p.Status); err != nil {
		return nil, fieldError("status", err)
	}
	if a.isPaid {
		a.status = StatusPaid
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the appointment invariants.
func (a *Appointment) Validate() error {
	if a.id == "" {
		return fieldError("id", ErrAppointmentIDEmpty)
	}
	if a.patientID == "" {
		return fieldError("patient_id", ErrAppointmentPatientIDEmpty)
	}
	if a.date.IsZero() {
		return fieldError("date", ErrInvalidDate)
	}
	if !a.status.IsValid() {
		return fieldError("status", ErrInvalidStatus)
	}
	if a.isPaid {
		if a.paymentDate == nil {
			return fieldError("payment_date", ErrPaymentDateRequired)
		}
		if a.status != StatusPaid {
			return fieldError("status", ErrPaidStatusMismatch)
		}
	}
	if a.clinicalEvolution != nil && utf8.RuneCountInString(*a.clinicalEvolution) > MaxClinicalEvolutionLength {
		return fieldError("clinical_evolution", ErrClinicalEvolutionTooLong)
	}
	if a.notes != nil && utf8.RuneCountInString(*a.notes) > MaxNotesLength {
		return fieldError("notes", ErrNotesTooLong)
	}
	return nil
}

// Update applies a partial change. Value objects touched by the change are
// rebuilt from the merged primitives, then the whole candidate is validated.
// On error the appointment is left exactly as it was.
func (a *Appointment) Update(u AppointmentUpdate) error {
	next := *a
	var err error

	if u.ClinicID != nil {
		next.clinicID = strings.TrimSpace(*u.ClinicID)
	}
	if u.Date != nil {
		if next.date, err = ParseDate(*u.Date); err != nil {
			return fieldError("date", err)
		}
	}
	if u.Time != nil {
		if next.time, err = NewTimeOfDay(*u.Time); err != nil {
			return fieldError("time", err)
		}
	}
	if u.Procedure != nil {
		if next.procedure, err = NewProcedure(*u.Procedure); err != nil {
			return fieldError("procedure", err)
		}
	}
	if u.Value != nil || u.Currency != nil {
		amount := a.value.Float64()
		if u.Value != nil {
			amount = *u.Value
		}
		currency := a.value.Currency()
		if u.Currency != nil {
			if currency, err = ParseCurrency(*u.Currency); err != nil {
				return fieldError("currency", err)
			}
		}
		if next.value, err = NewMoney(amount, currency); err != nil {
			return fieldError("value", err)
		}
	}
	if u.PaymentType != nil || u.PaymentPercentage != nil {
		kind := a.paymentType.String()
		if u.PaymentType != nil {
			kind = *u.PaymentType
		}
		percentage := a.paymentType.Percentage()
		if u.PaymentPercentage != nil {
			percentage = u.PaymentPercentage
		}
		if next.paymentType, err = NewPaymentType(kind, percentage); err != nil {
			return fieldError("payment_type", err)
		}
	}
	if u.PaymentDate != nil {
		if next.paymentDate, err = ParseOptionalDate(*u.PaymentDate); err != nil {
			return fieldError("payment_date", err)
		}
	}
	if u.Status != nil {
		if next.status, err = ParseAppointmentStatus(*u.Status); err != nil {
			return fieldError("status", err)
		}
	}
	if u.IsPaid != nil {
		next.isPaid = *u.IsPaid
		// Reverting a payment without an explicit status falls back to pending.
		if !next.isPaid && a.isPaid && u.Status == nil {
			next.status = StatusPending
		}
	}
	if next.isPaid {
		next.status = StatusPaid
	}
	if u.ClinicalEvolution != nil {
		next.clinicalEvolution = optionalText(u.ClinicalEvolution)
	}
	if u.Notes != nil {
		next.notes = optionalText(u.Notes)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	next.updatedAt = time.Now().UTC()
	*a = next
	return nil
}

// MarkAsPaid records the payment. A nil paymentDate defaults to the date of now.
func (a *Appointment) MarkAsPaid(paymentDate *Date, now time.Time) error {
	if a.isPaid {
		return ErrAlreadyPaid
	}
	if a.status == StatusCancelled {
		return ErrInvalidStatusTransition
	}

	d := Today(now)
	if paymentDate != nil {
		d = *paymentDate
	}
	a.isPaid = true
	a.paymentDate = &d
	a.status = StatusPaid
	a.updatedAt = now.UTC()
	return nil
}

// CanBeCancelled reports whether the appointment starts at least
// DefaultCancellationWindow after now.
func (a *Appointment) CanBeCancelled(now time.Time) bool {
	return a.canBeCancelledWithin(DefaultCancellationWindow, now)
}

func (a *Appointment) canBeCancelledWithin(window time.Duration, now time.Time) bool {
	return a.ScheduledAt().Sub(now) >= window
}

// Cancel cancels the appointment using DefaultCancellationWindow.
func (a *Appointment) Cancel(now time.Time) error {
	return a.CancelWithin(DefaultCancellationWindow, now)
}

// CancelWithin cancels the appointment if it is still cancellable and starts
// at least window after now.
func (a *Appointment) CancelWithin(window time.Duration, now time.Time) error {
	if !a.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	if !a.canBeCancelledWithin(window, now) {
		return ErrCancellationWindow
	}
	a.status = StatusCancelled
	a.updatedAt = now.UTC()
	return nil
}

// CalculateReceivedValue returns the share of the value the clinic receives
// under the appointment's payment type.
func (a *Appointment) CalculateReceivedValue() (Money, error) {
	return a.paymentType.CalculateReceivedValue(a.value)
}

// ScheduledAt combines date and time in the local zone.
func (a *Appointment) ScheduledAt() time.Time {
	return a.date.At(a.time, time.Local)
}

// IsPast reports whether the scheduled start is before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.ScheduledAt().Before(now)
}

// IsToday reports whether the appointment falls on the local date of now.
func (a *Appointment) IsToday(now time.Time) bool {
	return a.date.Equals(Today(now))
}

// ID returns the appointment identifier.
func (a *Appointment) ID() string { return a.id }

// PatientID returns the owning patient's identifier.
func (a *Appointment) PatientID() string { return a.patientID }

// ClinicID returns the clinic identifier, possibly empty.
func (a *Appointment) ClinicID() string { return a.clinicID }

// Date returns the calendar date.
func (a *Appointment) Date() Date { return a.date }

// Time returns the time of day.
func (a *Appointment) Time() TimeOfDay { return a.time }

// Procedure returns the procedure.
func (a *Appointment) Procedure() Procedure { return a.procedure }

// Value returns the total value.
func (a *Appointment) Value() Money { return a.value }

// PaymentType returns the payment type.
func (a *Appointment) PaymentType() PaymentType { return a.paymentType }

// IsPaid reports whether the appointment was paid.
func (a *Appointment) IsPaid() bool { return a.isPaid }

// PaymentDate returns the payment date, or nil.
func (a *Appointment) PaymentDate() *Date {
	if a.paymentDate == nil {
		return nil
	}
	d := *a.paymentDate
	return &d
}

// Status returns the current status.
func (a *Appointment) Status() AppointmentStatus { return a.status }

// ClinicalEvolution returns the clinical evolution text, or nil.
func (a *Appointment) ClinicalEvolution() *string { return copyText(a.clinicalEvolution) }

// Notes returns the notes text, or nil.
func (a *Appointment) Notes() *string { return copyText(a.notes) }

// CreatedAt returns the creation timestamp.
func (a *Appointment) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last modification timestamp.
func (a *Appointment) UpdatedAt() time.Time { return a.updatedAt }

// optionalText maps blank text to nil.
func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
