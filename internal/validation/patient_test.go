package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

func TestPatientValidator_Validate(t *testing.T) {
	t.Parallel()

	v := NewPatientValidator()

	tests := []struct {
		name   string
		input  PatientFields
		errors map[string]string
	}{
		{
			name:   "name only",
			input:  PatientFields{Name: "Ana"},
			errors: map[string]string{},
		},
		{
			name:   "all fields",
			input:  PatientFields{Name: "Ana", Email: "ana@example.com", Phone: "(11) 99999-9999"},
			errors: map[string]string{},
		},
		{
			name:   "invalid email",
			input:  PatientFields{Name: "Ana", Email: "not-an-email"},
			errors: map[string]string{"email": domain.ErrInvalidEmail.Error()},
		},
		{
			name:   "invalid phone",
			input:  PatientFields{Name: "Ana", Phone: "123"},
			errors: map[string]string{"phone": domain.ErrInvalidPhone.Error()},
		},
		{
			name:   "missing name",
			input:  PatientFields{},
			errors: map[string]string{"name": domain.ErrEmptyName.Error()},
		},
		{
			name:   "name too long",
			input:  PatientFields{Name: strings.Repeat("a", 256)},
			errors: map[string]string{"name": domain.ErrNameTooLong.Error()},
		},
		{
			name:  "everything wrong",
			input: PatientFields{Email: "x@", Phone: "1"},
			errors: map[string]string{
				"name":  domain.ErrEmptyName.Error(),
				"email": domain.ErrInvalidEmail.Error(),
				"phone": domain.ErrInvalidPhone.Error(),
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.Validate(tt.input)
			assert.Equal(t, len(tt.errors) == 0, res.IsValid)
			assert.Equal(t, tt.errors, res.Errors)
		})
	}
}

func TestPatientValidator_ValidateEssential(t *testing.T) {
	t.Parallel()

	v := NewPatientValidator()

	res := v.ValidateEssential(PatientFields{Name: "Ana", Email: "bad"})
	assert.True(t, res.IsValid, "essential checks ignore email shape")

	res = v.ValidateEssential(PatientFields{Name: "   "})
	assert.False(t, res.IsValid)
	assert.Equal(t, map[string]string{"name": "name is required"}, res.Errors)
}
