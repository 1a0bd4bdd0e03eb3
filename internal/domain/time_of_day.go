package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned when a time of day is not HH:mm or HH:mm:ss
// within 00:00 to 23:59.
var ErrInvalidTime = NewValidationError("time must be in HH:mm format")

var timeOfDayRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// TimeOfDay is a wall-clock time with minute precision, canonically "HH:mm".
type TimeOfDay struct {
	hour   int
	minute int
}

// NewTimeOfDay parses "HH:mm" or "HH:mm:ss". Seconds are accepted and dropped.
func NewTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTime
	}
	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec > 59 {
			return TimeOfDay{}, ErrInvalidTime
		}
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay is the optional variant of NewTimeOfDay: blank input yields nil.
func ParseTimeOfDay(s string) (*TimeOfDay, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := NewTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// IsValidTimeOfDay reports whether s parses as a time of day.
func IsValidTimeOfDay(s string) bool {
	_, err := NewTimeOfDay(s)
	return err == nil
}

// Hour returns the hour in [0,23].
func (t TimeOfDay) Hour() int { return t.hour }

// Minute returns the minute in [0,59].
func (t TimeOfDay) Minute() int { return t.minute }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.hour*60 + t.minute }

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Minutes() < other.Minutes() }

// Equals compares by normalized value.
func (t TimeOfDay) Equals(other TimeOfDay) bool { return t == other }

// String returns the canonical "HH:mm" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
