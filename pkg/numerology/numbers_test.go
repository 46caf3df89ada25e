package numerology

import "testing"

func TestDestinyNumber(t *testing.T) {
	cases := map[string]int{
		"1990-05-15": 3,
		"2009-11-29": 33,
		"2024-01-01": 1,
		"1985-12-31": 3,
	}
	for raw, want := range cases {
		if got := DestinyNumber(MustParseBirthdate(raw)); got != want {
			t.Fatalf("destiny %s: want %d, got %d", raw, want, got)
		}
	}
}

func TestRootNumber(t *testing.T) {
	cases := map[string]int{
		"1990-05-15": 6,
		"1990-05-29": 11,
		"1990-05-05": 5,
		"1990-05-10": 1,
		"1990-05-31": 4,
	}
	for raw, want := range cases {
		if got := RootNumber(MustParseBirthdate(raw)); got != want {
			t.Fatalf("root %s: want %d, got %d", raw, want, got)
		}
	}
}

func TestChaldeanNumber(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"JOHN", 9},
		{"john", 9},
		{"John Smith", 8},
		{"Kip", 11},
		{"Fox R", 22},
		{"", 0},
		{"123 !?", 0},
		{"O'Neil-7", 3},
	}
	for _, tc := range cases {
		if got := ChaldeanNumber(tc.name); got != tc.want {
			t.Fatalf("chaldean %q: want %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestChaldeanNumber_FullUppercaseMapping(t *testing.T) {
	if got := ChaldeanNumber("Straße"); got != 3 {
		t.Fatalf("expected 3 for Straße, got %d", got)
	}
	if a, b := ChaldeanNumber("Straße"), ChaldeanNumber("STRASSE"); a != b {
		t.Fatalf("expected Straße and STRASSE to match, got %d and %d", a, b)
	}
	_, letters := ChaldeanBreakdown("ß")
	if len(letters) != 2 || letters[0].Letter != "S" || letters[1].Letter != "S" {
		t.Fatalf("expected ß to expand to two S letters, got %#v", letters)
	}
}

func TestChaldeanBreakdown_ListsLetters(t *testing.T) {
	number, letters := ChaldeanBreakdown("Jo n")
	if number != 4 {
		t.Fatalf("unexpected number %d", number)
	}
	if len(letters) != 3 {
		t.Fatalf("expected 3 letters, got %#v", letters)
	}
	if letters[0].Letter != "J" || letters[0].Value != 1 {
		t.Fatalf("unexpected first letter %#v", letters[0])
	}
	if letters[2].Letter != "N" || letters[2].Value != 5 {
		t.Fatalf("unexpected last letter %#v", letters[2])
	}
}

func TestChaldeanValue_NoNine(t *testing.T) {
	for r := 'A'; r <= 'Z'; r++ {
		v, ok := ChaldeanValue(r)
		if !ok {
			t.Fatalf("letter %c missing from table", r)
		}
		if v < 1 || v > 8 {
			t.Fatalf("letter %c maps outside 1..8: %d", r, v)
		}
	}
	if _, ok := ChaldeanValue('7'); ok {
		t.Fatalf("digits must not map")
	}
}
