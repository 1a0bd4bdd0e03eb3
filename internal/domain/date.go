package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date is not a real YYYY-MM-DD calendar date.
var ErrInvalidDate = NewValidationError("date must be a valid YYYY-MM-DD calendar date")

// Date is a time-zone-naive calendar date.
//
// Dates are built from explicit year/month/day components and never go
// through a zone-aware parser, so "2024-01-15" stays "2024-01-15" whatever
// the local offset is.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a date from components, rejecting out-of-range values
// such as February 30th.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if year < 1 || year > 9999 || t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, ErrInvalidDate
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate parses "YYYY-MM-DD". A trailing time part ("2024-01-15T10:00:00Z")
// is ignored; only the leading date components are read.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, ErrInvalidDate
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, ErrInvalidDate
	}
	return NewDate(year, time.Month(month), day)
}

// ParseOptionalDate is the optional variant of ParseDate: blank input yields nil.
func ParseOptionalDate(s string) (*Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DateOf extracts the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the calendar date of now in the local zone.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

// Year returns the year component.
func (d Date) Year() int { return d.year }

// Month returns the month component.
func (d Date) Month() time.Month { return d.month }

// Day returns the day component.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.year == 0 }

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// At returns d at the given time of day in loc.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), 0, 0, loc)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) ordinal() int {
	return d.year*10000 + int(d.month)*100 + d.day
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.ordinal() < other.ordinal() }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.ordinal() > other.ordinal() }

// Equals compares calendar components.
func (d Date) Equals(other Date) bool { return d == other }

// String returns "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}
