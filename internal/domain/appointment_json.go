package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a created_at/updated_at value is not ISO-8601.
var ErrInvalidTimestamp = NewValidationError("timestamp must be an ISO-8601 date-time")

// timestampLayout matches the millisecond UTC form used by the hosted database
// client, e.g. "2024-01-15T10:30:00.000Z".
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// AppointmentJSON is the persisted record shape of an Appointment.
type AppointmentJSON struct {
	ID                string   `json:"id"`
	PatientID         string   `json:"patient_id"`
	ClinicID          string   `json:"clinic_id"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Procedure         string   `json:"procedure"`
	Value             float64  `json:"value"`
	Currency          string   `json:"currency"`
	PaymentType       string   `json:"payment_type"`
	PaymentPercentage *float64 `json:"payment_percentage"`
	IsPaid            bool     `json:"is_paid"`
	PaymentDate       *string  `json:"payment_date"`
	Status            string   `json:"status"`
	ClinicalEvolution *string  `json:"clinical_evolution"`
	Notes             *string  `json:"notes"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// ToJSON serializes the appointment. Date-only fields are written from their
// calendar components, never through a zoned timestamp. Timestamps are always
// written in UTC with millisecond precision ("2024-01-15T10:30:00.000Z"), so a
// record whose timestamps are already in that form round-trips unchanged and
// any other RFC 3339 spelling of the same instant is normalized to it.
func (a *Appointment) ToJSON() AppointmentJSON {
	j := AppointmentJSON{
		ID:                a.id,
		PatientID:         a.patientID,
		ClinicID:          a.clinicID,
		Date:              a.date.String(),
		Time:              a.time.String(),
		Procedure:         a.procedure.String(),
		Value:             a.value.Float64(),
		Currency:          string(a.value.Currency()),
		PaymentType:       a.paymentType.String(),
		PaymentPercentage: a.paymentType.Percentage(),
		IsPaid:            a.isPaid,
		Status:            string(a.status),
		ClinicalEvolution: copyText(a.clinicalEvolution),
		Notes:             copyText(a.notes),
		CreatedAt:         formatTimestamp(a.createdAt),
		UpdatedAt:         formatTimestamp(a.updatedAt),
	}
	if a.paymentDate != nil {
		s := a.paymentDate.String()
		j.PaymentDate = &s
	}
	return j
}

// AppointmentFromJSON rebuilds an Appointment from its persisted record.
// The record goes through the same invariant checks as NewAppointment.
// Timestamps accept any RFC 3339 form; sub-millisecond digits are dropped
// when the appointment is written back.
func AppointmentFromJSON(j AppointmentJSON) (*Appointment, error) {
	if strings.TrimSpace(j.ID) == "" {
		return nil, fieldError("id", ErrAppointmentIDEmpty)
	}
	createdAt, err := parseTimestamp(j.CreatedAt)
	if err != nil {
		return nil, fieldError("created_at", err)
	}
	updatedAt, err := parseTimestamp(j.UpdatedAt)
	if err != nil {
		return nil, fieldError("updated_at", err)
	}

	params := AppointmentParams{
		ID:                j.ID,
		PatientID:         j.PatientID,
		ClinicID:          j.ClinicID,
		Date:              j.Date,
		Time:              j.Time,
		Procedure:         j.Procedure,
		Value:             j.Value,
		Currency:          j.Currency,
		PaymentType:       j.PaymentType,
		PaymentPercentage: j.PaymentPercentage,
		IsPaid:            j.IsPaid,
		Status:            j.Status,
		ClinicalEvolution: j.ClinicalEvolution,
		Notes:             j.Notes,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
	if j.PaymentDate != nil {
		params.PaymentDate = *j.PaymentDate
	}
	return NewAppointment(params)
}

// MarshalJSON implements json.Marshaler.
func (a *Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	var j AppointmentJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	parsed, err := AppointmentFromJSON(j)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// formatTimestamp writes t in the canonical timestampLayout. The layout
// truncates to milliseconds.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp reads an RFC 3339 timestamp. Blank input yields the zero
// time so the constructor can default it.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t.UTC(), nil
}
