package numerology

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func timeMonth(m int) time.Month { return time.Month(m) }

func TestParseBirthdate_Valid(t *testing.T) {
	b, err := ParseBirthdate(" 1990-05-15 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Year() != 1990 || b.Month() != time.May || b.Day() != 15 {
		t.Fatalf("unexpected components: %d-%d-%d", b.Year(), b.Month(), b.Day())
	}
	if b.String() != "1990-05-15" {
		t.Fatalf("unexpected string form %q", b.String())
	}
}

func TestParseBirthdate_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"1990-5-15",
		"15-05-1990",
		"1990/05/15",
		"1990-13-01",
		"1990-00-10",
		"1990-04-31",
		"2023-02-29",
		"-990-01-01",
		"abcd-ef-gh",
	}
	for _, raw := range inputs {
		_, err := ParseBirthdate(raw)
		if err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
		if FieldOf(err) != "birthdate" {
			t.Fatalf("expected birthdate field for %q, got %q", raw, FieldOf(err))
		}
	}
}

func TestParseBirthdate_LeapDay(t *testing.T) {
	if _, err := ParseBirthdate("2024-02-29"); err != nil {
		t.Fatalf("expected leap day to parse: %v", err)
	}
}

func TestNewBirthdate_RejectsNormalisedDates(t *testing.T) {
	if _, err := NewBirthdate(2023, time.February, 30); err == nil {
		t.Fatalf("expected 2023-02-30 to be rejected")
	}
}

func TestBirthdate_JSONRoundTrip(t *testing.T) {
	payload, err := json.Marshal(struct {
		B Birthdate `json:"b"`
	}{B: MustParseBirthdate("2001-12-09")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"b":"2001-12-09"}` {
		t.Fatalf("unexpected payload %s", payload)
	}

	var decoded struct {
		B Birthdate `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"b":"2001-13-09"}`), &decoded); err == nil {
		t.Fatalf("expected invalid month to fail decoding")
	}
}
