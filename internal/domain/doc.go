// Package domain contains the clinic rule engine: value objects (money,
// time of day, phone, email, name, procedure, payment type, appointment
// status, calendar date) and the Appointment, Patient and Clinic entities
// composed from them.
//
// Value objects validate and normalize on construction and are immutable
// afterwards. Entities keep their fields unexported; every mutation builds a
// candidate next state, re-checks the invariants and only then commits.
package domain
