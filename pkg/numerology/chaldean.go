package numerology

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var chaldeanTable = map[rune]int{
	'A': 1, 'I': 1, 'J': 1, 'Q': 1, 'Y': 1,
	'B': 2, 'K': 2, 'R': 2,
	'C': 3, 'G': 3, 'L': 3, 'S': 3,
	'D': 4, 'M': 4, 'T': 4,
	'E': 5, 'H': 5, 'N': 5, 'X': 5,
	'U': 6, 'V': 6, 'W': 6,
	'O': 7, 'Z': 7,
	'F': 8, 'P': 8,
}

// LetterValue is one letter of a name and its Chaldean contribution.
type LetterValue struct {
	Letter string `json:"letter"`
	Value  int    `json:"value"`
}

// ChaldeanValue returns the table value of r (case-insensitive) and whether
// the letter is part of the table. No letter maps to 9.
func ChaldeanValue(r rune) (int, bool) {
	v, ok := chaldeanTable[unicode.ToUpper(r)]
	return v, ok
}

// ChaldeanNumber sums the Chaldean values of the letters in name and reduces
// the total, keeping 11 and 22. Characters outside the table contribute 0, so
// an empty or letterless name yields 0.
func ChaldeanNumber(name string) int {
	number, _ := ChaldeanBreakdown(name)
	return number
}

// ChaldeanBreakdown is ChaldeanNumber plus the per-letter contributions in the
// order they appear. Names are upper-cased with full Unicode mappings, so
// "ß" counts as "SS".
func ChaldeanBreakdown(name string) (int, []LetterValue) {
	// A Caser keeps state, so each call builds its own.
	upper := cases.Upper(language.Und).String(name)
	cleaned := strings.ReplaceAll(upper, " ", "")

	sum := 0
	var letters []LetterValue
	for _, r := range cleaned {
		v, ok := chaldeanTable[r]
		if !ok {
			continue
		}
		sum += v
		letters = append(letters, LetterValue{Letter: string(r), Value: v})
	}
	return MustReduce(sum, NameMasters()), letters
}
