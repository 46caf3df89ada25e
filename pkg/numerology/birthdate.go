package numerology

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Birthdate is a validated Gregorian calendar date. Construct it with
// ParseBirthdate or NewBirthdate; the zero value is not a valid birthdate.
type Birthdate struct {
	t time.Time
}

// ParseBirthdate parses a YYYY-MM-DD string. The year must be written with
// exactly four digits so that the grid can drop the century digits.
func ParseBirthdate(raw string) (Birthdate, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Birthdate{}, invalidDate(errors.New("birthdate is required"))
	}
	if !matchesLayout(trimmed) {
		return Birthdate{}, invalidDate(errors.New("expected format YYYY-MM-DD"))
	}
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return Birthdate{}, invalidDate(err)
	}
	return Birthdate{t: t}, nil
}

// MustParseBirthdate panics when raw is not a valid date. Intended for tests
// and constant inputs.
func MustParseBirthdate(raw string) Birthdate {
	b, err := ParseBirthdate(raw)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBirthdate builds a Birthdate from its components, rejecting values that
// time.Date would normalise (e.g. 2023-02-30).
func NewBirthdate(year int, month time.Month, day int) (Birthdate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day || year < 0 || year > 9999 {
		return Birthdate{}, invalidDate(errors.New("day out of range"))
	}
	return Birthdate{t: t}, nil
}

func matchesLayout(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidDate(err error) error {
	return &OpError{
		Op:    "numerology.parse_birthdate",
		Kind:  KindInvalidDate,
		Field: "birthdate",
		Err:   err,
	}
}

func (b Birthdate) Year() int         { return b.t.Year() }
func (b Birthdate) Month() time.Month { return b.t.Month() }
func (b Birthdate) Day() int          { return b.t.Day() }

// Time returns the birthdate at midnight UTC.
func (b Birthdate) Time() time.Time { return b.t }

// IsZero reports whether b was never initialised.
func (b Birthdate) IsZero() bool { return b.t.IsZero() }

// String renders the canonical YYYY-MM-DD form every digit-based rule reads.
func (b Birthdate) String() string {
	return b.t.Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (b Birthdate) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Birthdate) UnmarshalText(text []byte) error {
	parsed, err := ParseBirthdate(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// anniversary returns the birthday in the given year. A 29 February birthday
// lands on 28 February in common years.
func (b Birthdate) anniversary(year int) time.Time {
	day := b.Day()
	if b.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, b.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// digits returns the decimal digits of the literal date string in order.
func (b Birthdate) digits() []int {
	s := b.String()
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, int(r-'0'))
		}
	}
	return out
}
