package ledger

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk date layout (YYYYMMDD).
const DateLayout = "20060102"

// NoDate is written in place of a missing date.
const NoDate = "00000000"

// Date represents a calendar date. A nil *Date is a missing date.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// InvalidDateError is returned when a date field is not exactly eight digits
// or does not name a calendar day.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYYMMDD", e.Value)
}

// ParseDate parses a YYYYMMDD date. An empty value and the all-zero
// placeholder both yield a nil date without error.
func ParseDate(s string) (*Date, error) {
	if s == "" || s == NoDate {
		return nil, nil
	}
	if len(s) != 8 {
		return nil, &InvalidDateError{Value: s}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, &InvalidDateError{Value: s}
		}
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &InvalidDateError{Value: s}
	}
	return &Date{t}, nil
}

// MustParseDate is like ParseDate but panics on error.
// Use only in tests or for constant input.
func MustParseDate(s string) *Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date as YYYYMMDD, or the all-zero placeholder when the
// date is missing.
func (d *Date) String() string {
	if d.IsZero() {
		return NoDate
	}
	return d.Format(DateLayout)
}

// IsZero returns true if the Date is nil or represents the zero time.
func (d *Date) IsZero() bool {
	if d == nil {
		return true
	}
	return d.Time.IsZero()
}

// Equal reports whether both dates name the same day. Two missing dates are
// equal.
func (d *Date) Equal(other *Date) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() && other.IsZero()
	}
	return d.Time.Equal(other.Time)
}
