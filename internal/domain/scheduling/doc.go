// Package scheduling implements the appointment domain service: it derives
// statuses, computes received values from raw records, normalizes form or
// import input into canonical entity params, and applies contextual date
// rules that do not belong to the Appointment entity itself.
package scheduling
