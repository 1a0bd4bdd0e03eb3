package validation

import (
	"strings"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// PatientFields is the patient input a form submits.
type PatientFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PatientValidator checks patient input before a patient is created or updated.
type PatientValidator struct{}

// NewPatientValidator creates a PatientValidator.
func NewPatientValidator() *PatientValidator {
	return &PatientValidator{}
}

type essentialPatient struct {
	Name string `field:"name" validate:"required"`
}

// ValidateEssential checks that a name is present.
func (v *PatientValidator) ValidateEssential(p PatientFields) Result {
	r := newResult()
	checkPresence(r, essentialPatient{Name: strings.TrimSpace(p.Name)})
	return *r
}

// Validate checks every supplied field. Email and phone are optional, but
// when present they must be well formed.
func (v *PatientValidator) Validate(p PatientFields) Result {
	r := newResult()
	if _, err := domain.NewName(p.Name); err != nil {
		r.add("name", err.Error())
	}
	if _, err := domain.ParseEmail(p.Email); err != nil {
		r.add("email", err.Error())
	}
	if _, err := domain.ParsePhone(p.Phone); err != nil {
		r.add("phone", err.Error())
	}
	return *r
}
