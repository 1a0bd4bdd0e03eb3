package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, wantIs: store.ErrDuplicate},
		{
			name:   "foreign key violation",
			err:    &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "fk_user"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "check violation",
			err:    &pgconn.PgError{Code: checkViolationCode, ConstraintName: "patients_phone_check"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation",
			err:    &pgconn.PgError{Code: notNullViolationCode, ColumnName: "name"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "wrapped pg error",
			err:    fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode}),
			wantIs: store.ErrDuplicate,
		},
		{name: "unmapped", err: plain, wantIs: plain},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}
}

func TestMapError_IncludesConstraintName(t *testing.T) {
	t.Parallel()

	err := MapError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "patients_phone_check"})
	assert.Contains(t, err.Error(), "patients_phone_check")
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrPatientNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrPatientNotFound), store.ErrPatientNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))

	rowsErr := errors.New("driver does not support RowsAffected")
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewErrorResult(rowsErr), nil), rowsErr)
}
