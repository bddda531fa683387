// Package dates validates and compares the dd.mm.yyyy day stamps that key
// every task and history line.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
)

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day. The zero value is not a valid date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Parse splits s on '.' into day, month and year and checks each bound.
// Fields must be ASCII digits only. Zero padding is not required: "1.1.2030"
// is accepted.
func Parse(s string) (Date, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q: expected dd.mm.yyyy", ErrInvalidDate, s)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		if p == "" {
			return Date{}, fmt.Errorf("%w: %q: missing field", ErrInvalidDate, s)
		}
		if !isDigits(p) {
			return Date{}, fmt.Errorf("%w: %q: non-numeric field %q", ErrInvalidDate, s, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: field %q out of range", ErrInvalidDate, s, p)
		}
		fields[i] = n
	}

	d := Date{Day: fields[0], Month: fields[1], Year: fields[2]}
	if err := d.Validate(); err != nil {
		return Date{}, fmt.Errorf("%w: %q", err, s)
	}
	return d, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Validate checks field bounds.
func (d Date) Validate() error {
	switch {
	case d.Day < 1 || d.Day > 31:
		return fmt.Errorf("%w: day %d out of range 1-31", ErrInvalidDate, d.Day)
	case d.Month < 1 || d.Month > 12:
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidDate, d.Month)
	case d.Year < constants.MinYear || d.Year > constants.MaxYear:
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidDate, d.Year, constants.MinYear, constants.MaxYear)
	}
	return nil
}

// String renders the canonical zero-padded form.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// Equal compares canonical forms.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// Before compares canonical forms lexicographically.
func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

// After compares canonical forms lexicographically.
func (d Date) After(other Date) bool {
	return d.String() > other.String()
}

// FromTime converts t to a Date in t's location.
func FromTime(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Clock supplies "today" to the rest of the program.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in Location.
type SystemClock struct {
	Location *time.Location
}

var nowFunc = time.Now

func (c SystemClock) Today() Date {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return FromTime(nowFunc().In(loc))
}

// FixedClock always returns the same day.
type FixedClock Date

func (c FixedClock) Today() Date {
	return Date(c)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}
