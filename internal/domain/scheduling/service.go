package scheduling

import (
	"strings"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// ErrPastDate is returned when an appointment is created for a day before today.
var ErrPastDate = domain.NewDomainRuleError("cannot create an appointment in the past")

// Service defines the appointment rules that need more context than a
// single entity: status derivation, input normalization and date checks.
type Service interface {
	// DetermineStatus derives the status an appointment record should carry
	DetermineStatus(data AppointmentData) domain.AppointmentStatus

	// CalculateReceivedValue computes the amount received for a raw record
	CalculateReceivedValue(data AppointmentData) float64

	// NormalizeAppointmentData turns a raw record into canonical entity params
	NormalizeAppointmentData(data AppointmentData) domain.AppointmentParams

	// CanCreateAppointment rejects dates before today unless allowPastDates is set
	CanCreateAppointment(date domain.Date, allowPastDates bool) error

	// BuildAppointment normalizes a raw record, checks its date and constructs the entity
	BuildAppointment(data AppointmentData) (*domain.Appointment, error)

	// CancelAppointment cancels using the configured cancellation window
	CancelAppointment(a *domain.Appointment) error
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// DetermineStatus applies, in order:
//  1. a paid record is always paid, whatever status it asks for;
//  2. an unpaid record asking for scheduled is presented as pending;
//  3. any other requested status is returned verbatim;
//  4. a record without status is scheduled.
func (s *defaultService) DetermineStatus(data AppointmentData) domain.AppointmentStatus {
	if data.IsPaid {
		return domain.StatusPaid
	}

	status := strings.ToLower(strings.TrimSpace(data.Status))
	if status == "" {
		return domain.StatusScheduled
	}
	if domain.AppointmentStatus(status) == domain.StatusScheduled {
		return domain.StatusPending
	}
	return domain.AppointmentStatus(status)
}

// CalculateReceivedValue returns 0 without a value, the value itself for
// full payments and value*percentage/100 for percentage payments. A
// percentage payment without a percentage also yields 0.
func (s *defaultService) CalculateReceivedValue(data AppointmentData) float64 {
	value, ok := ToNumber(data.Value)
	if !ok {
		return 0
	}

	if strings.TrimSpace(data.PaymentType) == "" {
		return 0
	}
	kind, err := domain.ParsePaymentKind(data.PaymentType)
	if err != nil {
		return 0
	}

	switch kind {
	case domain.PaymentFull:
		return value
	case domain.PaymentPercentage:
		percentage, ok := ToNumber(data.PaymentPercentage)
		if !ok {
			return 0
		}
		return value * percentage / 100
	default:
		return 0
	}
}

// NormalizeAppointmentData is a pure transformation: it trims identifiers,
// coerces the value (non-numeric becomes 0), fills in currency and payment
// type defaults, drops blank free text and derives the status.
func (s *defaultService) NormalizeAppointmentData(data AppointmentData) domain.AppointmentParams {
	value, _ := ToNumber(data.Value)

	currency := strings.ToUpper(strings.TrimSpace(data.Currency))
	if currency == "" {
		currency = string(s.params.DefaultCurrency)
	}

	paymentType := strings.TrimSpace(data.PaymentType)
	if paymentType == "" {
		paymentType = string(domain.PaymentFull)
	}

	return domain.AppointmentParams{
		ID:                strings.TrimSpace(data.ID),
		PatientID:         strings.TrimSpace(data.PatientID),
		ClinicID:          strings.TrimSpace(data.ClinicID),
		Date:              strings.TrimSpace(data.Date),
		Time:              strings.TrimSpace(data.Time),
		Procedure:         strings.TrimSpace(data.Procedure),
		Value:             value,
		Currency:          currency,
		PaymentType:       paymentType,
		PaymentPercentage: optionalNumber(data.PaymentPercentage),
		IsPaid:            data.IsPaid,
		PaymentDate:       strings.TrimSpace(data.PaymentDate),
		Status:            string(s.DetermineStatus(data)),
		ClinicalEvolution: trimmedText(data.ClinicalEvolution),
		Notes:             trimmedText(data.Notes),
	}
}

// CanCreateAppointment compares at day granularity against the local date of now.
func (s *defaultService) CanCreateAppointment(date domain.Date, allowPastDates bool) error {
	if allowPastDates {
		return nil
	}
	if date.Before(domain.Today(s.params.Now())) {
		return ErrPastDate
	}
	return nil
}

// BuildAppointment implements the Service interface
func (s *defaultService) BuildAppointment(data AppointmentData) (*domain.Appointment, error) {
	params := s.NormalizeAppointmentData(data)

	date, err := domain.ParseDate(params.Date)
	if err != nil {
		return nil, &domain.FieldError{Field: "date", Err: err}
	}
	if err := s.CanCreateAppointment(date, s.params.AllowPastDates); err != nil {
		return nil, &domain.FieldError{Field: "date", Err: err}
	}

	return domain.NewAppointment(params)
}

// CancelAppointment implements the Service interface
func (s *defaultService) CancelAppointment(a *domain.Appointment) error {
	return a.CancelWithin(s.params.CancellationWindow, s.params.Now())
}
