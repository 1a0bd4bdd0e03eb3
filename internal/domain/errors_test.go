package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantValidation bool
		wantRule       bool
	}{
		{name: "validation sentinel", err: ErrInvalidPhone, wantValidation: true},
		{name: "rule sentinel", err: ErrAlreadyPaid, wantRule: true},
		{name: "field wrapped", err: fieldError("email", ErrInvalidEmail), wantValidation: true},
		{name: "fmt wrapped", err: fmt.Errorf("saving: %w", ErrCancellationWindow), wantRule: true},
		{name: "unrelated", err: errors.New("connection reset")},
		{name: "nil", err: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantValidation, IsValidationError(tc.err))
			assert.Equal(t, tc.wantRule, IsDomainRuleError(tc.err))
		})
	}
}

func TestFieldError(t *testing.T) {
	t.Parallel()

	err := fieldError("phone", ErrInvalidPhone)
	assert.Equal(t, "phone: phone must have 10 or 11 digits", err.Error())
	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, fieldError("phone", nil))
	assert.Equal(t, "cannot operate on amounts with different currencies", ErrCurrencyMismatch.Error())
}
