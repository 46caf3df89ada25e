package numerology

import (
	"errors"
	"testing"
)

func TestReduce_Policies(t *testing.T) {
	cases := []struct {
		name    string
		in      int
		masters MasterSet
		want    int
	}{
		{"zero", 0, DateMasters(), 0},
		{"single digit", 9, DateMasters(), 9},
		{"ten", 10, DateMasters(), 1},
		{"date keeps 11", 11, DateMasters(), 11},
		{"date keeps 33", 33, DateMasters(), 33},
		{"name reduces 33", 33, NameMasters(), 6},
		{"name keeps 22", 22, NameMasters(), 22},
		{"full reduction ignores 11", 11, NoMasters(), 2},
		{"multi step to master", 38, DateMasters(), 11},
		{"multi step full", 1990, NoMasters(), 1},
		{"name multi step", 99, NameMasters(), 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Reduce(tc.in, tc.masters)
			if err != nil {
				t.Fatalf("reduce %d: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("reduce %d: want %d, got %d", tc.in, tc.want, got)
			}
		})
	}
}

func TestReduce_NegativeInput(t *testing.T) {
	_, err := Reduce(-4, DateMasters())
	if err == nil {
		t.Fatalf("expected error for negative input")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !IsKind(err, KindInvalidInput) {
		t.Fatalf("expected invalid_input kind, got %v", err)
	}
}

func TestReduce_RangeForAllDates(t *testing.T) {
	allowed := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 11: true, 22: true, 33: true}

	for year := 1900; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day += 3 {
				b, err := NewBirthdate(year, timeMonth(month), day)
				if err != nil {
					t.Fatalf("new birthdate: %v", err)
				}
				if got := DestinyNumber(b); !allowed[got] {
					t.Fatalf("destiny for %s out of range: %d", b, got)
				}
				if got := RootNumber(b); !allowed[got] {
					t.Fatalf("root for %s out of range: %d", b, got)
				}
			}
		}
	}
}

func TestDigitSum(t *testing.T) {
	if got := DigitSum(1990); got != 19 {
		t.Fatalf("expected 19, got %d", got)
	}
	if got := DigitSum(0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMasterSets_CallersCannotAlterPolicies(t *testing.T) {
	values := NameMasters().Values()
	values[0] = 3
	if got := ChaldeanNumber("NAN"); got != 11 {
		t.Fatalf("expected NAN to keep 11, got %d", got)
	}

	date := DateMasters().Values()
	for i := range date {
		date[i] = 0
	}
	if got := DateMasters().Values(); len(got) != 3 || got[0] != 11 || got[1] != 22 || got[2] != 33 {
		t.Fatalf("date masters changed: %v", got)
	}
	if got := MustReduce(33, DateMasters()); got != 33 {
		t.Fatalf("expected 33 to stay a date master, got %d", got)
	}
}

func TestNewMasterSet_IgnoresOutOfRange(t *testing.T) {
	set := NewMasterSet(5, 11, 64, -1)
	if got := set.Values(); len(got) != 1 || got[0] != 11 {
		t.Fatalf("unexpected members %v", got)
	}
	if set.Contains(5) || set.Contains(64) {
		t.Fatalf("out of range values should not be members")
	}
	if NoMasters().Contains(11) {
		t.Fatalf("NoMasters should be empty")
	}
}
