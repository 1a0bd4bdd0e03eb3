package scheduling

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AppointmentData is a loosely typed appointment record as submitted by a
// form or an import file. Value and PaymentPercentage accept numbers,
// numeric strings or nothing at all.
type AppointmentData struct {
	ID                string  `json:"id,omitempty"`
	PatientID         string  `json:"patient_id,omitempty"`
	PatientName       string  `json:"patient_name,omitempty"`
	PatientEmail      string  `json:"patient_email,omitempty"`
	PatientPhone      string  `json:"patient_phone,omitempty"`
	UserID            string  `json:"user_id,omitempty"`
	ClinicID          string  `json:"clinic_id,omitempty"`
	Date              string  `json:"date,omitempty"`
	Time              string  `json:"time,omitempty"`
	Procedure         string  `json:"procedure,omitempty"`
	Value             any     `json:"value,omitempty"`
	Currency          string  `json:"currency,omitempty"`
	PaymentType       string  `json:"payment_type,omitempty"`
	PaymentPercentage any     `json:"payment_percentage,omitempty"`
	IsPaid            bool    `json:"is_paid,omitempty"`
	PaymentDate       string  `json:"payment_date,omitempty"`
	Status            string  `json:"status,omitempty"`
	ClinicalEvolution *string `json:"clinical_evolution,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// ToNumber coerces a loosely typed numeric value. It reports false for
// nil, blank strings and anything that does not parse as a finite number.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case *float64:
		if n == nil {
			return 0, false
		}
		f = *n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func optionalNumber(v any) *float64 {
	f, ok := ToNumber(v)
	if !ok {
		return nil
	}
	return &f
}

// trimmedText maps blank text to nil and trims the rest.
func trimmedText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
