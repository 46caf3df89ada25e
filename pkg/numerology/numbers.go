package numerology

import "fmt"

// DestinyNumber reduces year, month and day independently, sums them and
// reduces the total, keeping 11, 22 and 33.
func DestinyNumber(b Birthdate) int {
	year := MustReduce(b.Year(), DateMasters())
	month := MustReduce(int(b.Month()), DateMasters())
	day := MustReduce(b.Day(), DateMasters())
	return MustReduce(year+month+day, DateMasters())
}

// RootNumber sums the digits of the day of month and reduces the result,
// keeping 11, 22 and 33.
func RootNumber(b Birthdate) int {
	sum := 0
	for _, r := range fmt.Sprintf("%02d", b.Day()) {
		sum += int(r - '0')
	}
	return MustReduce(sum, DateMasters())
}

// cycleStart is the root number reduced without master exceptions; it seeds
// the Mahadasha cycle.
func cycleStart(b Birthdate) int {
	return MustReduce(DigitSum(b.Day()), NoMasters())
}
