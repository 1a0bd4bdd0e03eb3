package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
)

// SQLSTATE codes raised by the patients schema.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// pgErrorKind says which store sentinel a constraint failure maps to and
// how to name the offending constraint or column in the message.
type pgErrorKind struct {
	sentinel error
	label    string
	subject  func(*pgconn.PgError) string
}

func constraintOf(e *pgconn.PgError) string { return e.ConstraintName }

func columnOf(e *pgconn.PgError) string { return e.ColumnName }

var pgErrorKinds = map[string]pgErrorKind{
	uniqueViolationCode:     {sentinel: store.ErrDuplicate, label: "unique violation", subject: constraintOf},
	foreignKeyViolationCode: {sentinel: store.ErrInvalidEntity, label: "foreign key violation", subject: constraintOf},
	checkViolationCode:      {sentinel: store.ErrInvalidEntity, label: "check constraint violation", subject: constraintOf},
	notNullViolationCode:    {sentinel: store.ErrInvalidEntity, label: "not null violation", subject: columnOf},
}

// MapError translates a driver error into the store error vocabulary.
// The original error stays in the message but only the store sentinel is
// wrapped, so callers branch on store errors and never on pg codes.
// Errors with no mapping are returned as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	kind, ok := pgErrorKinds[pgErr.Code]
	if !ok {
		return err
	}
	if subject := kind.subject(pgErr); subject != "" {
		return fmt.Errorf("%w: %s (%s): %v", kind.sentinel, kind.label, subject, err)
	}
	return fmt.Errorf("%w: %s: %v", kind.sentinel, kind.label, err)
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound (store.ErrNotFound when nil) if an
// UPDATE matched no row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("no result to inspect for affected rows")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
