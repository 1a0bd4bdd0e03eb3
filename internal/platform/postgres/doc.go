// Package postgres provides the PostgreSQL implementation of the patient
// store defined in internal/store, together with the connection setup and
// the embedded goose migrations that create its schema.
package postgres
