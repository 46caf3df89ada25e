package numerology

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculator_ModesPopulateOneTable(t *testing.T) {
	cases := []struct {
		mode  Mode
		check func(Result) bool
	}{
		{ModeCalendar, func(r Result) bool { return len(r.Periods) == 18 && r.MissingNumbers == nil && r.YearlyPeriods == nil }},
		{ModeMissing, func(r Result) bool { return r.Periods == nil && len(r.MissingNumbers) > 0 && r.YearlyPeriods == nil }},
		{ModeYearly, func(r Result) bool { return r.Periods == nil && r.MissingNumbers == nil && len(r.YearlyPeriods) == 100 }},
	}

	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			calc := NewCalculator(WithMode(tc.mode))
			result, err := calc.Compute("John", "1990-05-15")
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			if result.Mode != tc.mode {
				t.Fatalf("expected mode %s, got %s", tc.mode, result.Mode)
			}
			if !tc.check(result) {
				t.Fatalf("unexpected tables for mode %s: %+v", tc.mode, result)
			}
		})
	}
}

func TestCalculator_ComputeCoreNumbers(t *testing.T) {
	result, err := NewCalculator().Compute("JOHN", "1990-05-15")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.ChaldeanNumber != 9 || result.DestinyNumber != 3 || result.RootNumber != 6 {
		t.Fatalf("unexpected numbers: chaldean=%d destiny=%d root=%d", result.ChaldeanNumber, result.DestinyNumber, result.RootNumber)
	}
	wantLayout := [][]int{{3, 1, 9}, {6, 7, 5}, {2, 8, 4}}
	if diff := cmp.Diff(wantLayout, result.GridLayout); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	wantGrid := [][]string{{"3", "1", "9"}, {"6", "", "55"}, {"", "", ""}}
	if diff := cmp.Diff(wantGrid, result.VedicGrid); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_InvalidDate(t *testing.T) {
	_, err := NewCalculator().Compute("John", "1990-02-30")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCalculator_OptionsDefaults(t *testing.T) {
	opts := NewOptions(WithCycles(-1), WithYears(0), WithMode(""))
	if opts.Cycles != DefaultCycles || opts.Years != DefaultYears || opts.Mode != ModeCalendar {
		t.Fatalf("defaults not restored: %+v", opts)
	}
	var nilCalc *Calculator
	if nilCalc.Options().Mode != ModeCalendar {
		t.Fatalf("nil calculator should report defaults")
	}
}

func TestResult_JSONFieldNames(t *testing.T) {
	result, err := NewCalculator(WithMode(ModeMissing)).Compute("John", "2024-01-01")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"chaldean_number":`, `"vedic_grid":`, `"grid_layout":`, `"missing_numbers":[3,5,6,7,8,9]`, `"birthdate":"2024-01-01"`} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("expected %s in %s", key, payload)
		}
	}
	if strings.Contains(string(payload), "mahadasha_periods") {
		t.Fatalf("calendar periods must be omitted in missing mode: %s", payload)
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range Modes() {
		got, err := ParseMode(strings.ToUpper(string(mode)))
		if err != nil || got != mode {
			t.Fatalf("parse %s: got %q %v", mode, got, err)
		}
	}
	if _, err := ParseMode("weekly"); err == nil {
		t.Fatalf("expected unknown mode to fail")
	}
}
