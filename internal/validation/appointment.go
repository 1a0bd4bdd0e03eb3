package validation

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/scheduling"
)

// Messages reported by AppointmentValidator for rules that have no domain error.
const (
	msgValueNotNumber      = "value must be a number"
	msgPercentageNotNumber = "payment percentage must be a number"
)

// AppointmentValidator checks raw appointment input before it is built into
// an entity.
type AppointmentValidator struct {
	allowPastDates bool
	now            func() time.Time
}

// AppointmentOption configures an AppointmentValidator.
type AppointmentOption func(*AppointmentValidator)

// WithPastDates makes the validator accept dates before today.
func WithPastDates(allow bool) AppointmentOption {
	return func(v *AppointmentValidator) { v.allowPastDates = allow }
}

// WithClock replaces the clock used to decide what "today" is.
func WithClock(now func() time.Time) AppointmentOption {
	return func(v *AppointmentValidator) { v.now = now }
}

// NewAppointmentValidator creates an AppointmentValidator. Past dates are
// rejected unless WithPastDates(true) is given.
func NewAppointmentValidator(opts ...AppointmentOption) *AppointmentValidator {
	v := &AppointmentValidator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type essentialAppointment struct {
	PatientID   string `field:"patient" validate:"required_without=PatientName"`
	PatientName string `field:"patient" validate:"required_without=PatientID"`
	Date        string `field:"date"      validate:"required"`
	Time        string `field:"time"      validate:"required"`
	Procedure   string `field:"procedure" validate:"required"`
}

// ValidateEssential checks that the fields needed to submit an appointment
// are present: a patient (id or name), a date, a time and a procedure.
func (v *AppointmentValidator) ValidateEssential(data scheduling.AppointmentData) Result {
	r := newResult()
	checkPresence(r, essentialAppointment{
		PatientID:   strings.TrimSpace(data.PatientID),
		PatientName: strings.TrimSpace(data.PatientName),
		Date:        strings.TrimSpace(data.Date),
		Time:        strings.TrimSpace(data.Time),
		Procedure:   strings.TrimSpace(data.Procedure),
	})
	return *r
}

// Validate runs the full validation pass. Presence problems are reported
// first; shape problems follow for the fields that were supplied.
func (v *AppointmentValidator) Validate(data scheduling.AppointmentData) Result {
	r := newResult()
	essential := v.ValidateEssential(data)
	for field, msg := range essential.Errors {
		r.add(field, msg)
	}

	if raw := strings.TrimSpace(data.Date); raw != "" {
		v.validateDate(r, raw)
	}
	if raw := strings.TrimSpace(data.Time); raw != "" {
		if _, err := domain.ParseTimeOfDay(raw); err != nil {
			r.add("time", err.Error())
		}
	}
	if raw := strings.TrimSpace(data.Procedure); raw != "" {
		if _, err := domain.NewProcedure(raw); err != nil {
			r.add("procedure", err.Error())
		}
	}

	currency, err := domain.ParseCurrency(data.Currency)
	if err != nil {
		r.add("currency", err.Error())
		currency = domain.DefaultCurrency
	}
	if data.Value != nil {
		value, ok := scheduling.ToNumber(data.Value)
		switch {
		case !ok:
			r.add("value", msgValueNotNumber)
		default:
			if _, err := domain.NewMoney(value, currency); err != nil {
				r.add("value", err.Error())
			}
		}
	}

	v.validatePaymentType(r, data)

	switch raw := strings.TrimSpace(data.PaymentDate); {
	case raw != "":
		if _, err := domain.ParseDate(raw); err != nil {
			r.add("payment_date", err.Error())
		}
	case data.IsPaid:
		r.add("payment_date", domain.ErrPaymentDateRequired.Error())
	}
	if raw := strings.TrimSpace(data.Status); raw != "" {
		if _, err := domain.ParseAppointmentStatus(raw); err != nil {
			r.add("status", err.Error())
		}
	}
	if data.ClinicalEvolution != nil &&
		utf8.RuneCountInString(strings.TrimSpace(*data.ClinicalEvolution)) > domain.MaxClinicalEvolutionLength {
		r.add("clinical_evolution", domain.ErrClinicalEvolutionTooLong.Error())
	}
	if data.Notes != nil && utf8.RuneCountInString(strings.TrimSpace(*data.Notes)) > domain.MaxNotesLength {
		r.add("notes", domain.ErrNotesTooLong.Error())
	}

	if raw := strings.TrimSpace(data.PatientEmail); raw != "" && !domain.IsValidEmail(raw) {
		r.add("patient_email", domain.ErrInvalidEmail.Error())
	}
	if raw := strings.TrimSpace(data.PatientPhone); raw != "" && !domain.IsValidPhone(raw) {
		r.add("patient_phone", domain.ErrInvalidPhone.Error())
	}

	return *r
}

func (v *AppointmentValidator) validateDate(r *Result, raw string) {
	date, err := domain.ParseDate(raw)
	if err != nil {
		r.add("date", err.Error())
		return
	}
	if !v.allowPastDates && date.Before(domain.Today(v.now())) {
		r.add("date", scheduling.ErrPastDate.Error())
	}
}

func (v *AppointmentValidator) validatePaymentType(r *Result, data scheduling.AppointmentData) {
	var pct *float64
	if data.PaymentPercentage != nil {
		n, ok := scheduling.ToNumber(data.PaymentPercentage)
		if !ok {
			r.add("payment_percentage", msgPercentageNotNumber)
			return
		}
		pct = &n
	}

	_, err := domain.NewPaymentType(data.PaymentType, pct)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPercentageRequired), errors.Is(err, domain.ErrInvalidPercentage):
		r.add("payment_percentage", err.Error())
	default:
		r.add("payment_type", err.Error())
	}
}
