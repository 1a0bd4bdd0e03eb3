package domain

import "strings"

// AppointmentStatus represents the lifecycle state of an appointment.
//
//	scheduled → pending → paid
//	scheduled → paid
//	scheduled → cancelled
//	pending   → cancelled
type AppointmentStatus string

// Possible appointment status values
const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusPending   AppointmentStatus = "pending"
	StatusPaid      AppointmentStatus = "paid"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ErrInvalidStatus is returned when a status is not one of the known values.
var ErrInvalidStatus = NewValidationError("status must be one of scheduled, pending, paid, cancelled")

var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusPending, StatusPaid, StatusCancelled},
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

// ParseAppointmentStatus normalizes a status. An empty status yields StatusScheduled.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusScheduled, nil
	}
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid checks if the status is a known value.
func (s AppointmentStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the wire form.
func (s AppointmentStatus) String() string { return string(s) }
