package numerology

import (
	"fmt"
	"time"
)

// CycleLength is the number of periods in one Mahadasha cycle.
const CycleLength = 9

const (
	// DefaultCycles is the number of full cycles in calendar mode.
	DefaultCycles = 2
	// DefaultYears is the number of rows in year-by-year mode.
	DefaultYears = 100
)

// weekdayOffsets feed the antardasha sum, indexed by time.Weekday.
var weekdayOffsets = [7]int{
	time.Sunday:    1,
	time.Monday:    2,
	time.Tuesday:   9,
	time.Wednesday: 5,
	time.Thursday:  3,
	time.Friday:    6,
	time.Saturday:  8,
}

// WeekdayOffset returns the antardasha constant for a weekday.
func WeekdayOffset(d time.Weekday) int {
	return weekdayOffsets[d]
}

// Period is one Mahadasha span in calendar-duration mode.
type Period struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Duration   int    `json:"duration"`
	RunningAge string `json:"running_age"`
}

// YearRow is one calendar year in year-by-year mode.
type YearRow struct {
	Year       int    `json:"year"`
	StartDate  string `json:"start_date"`
	RunningAge int    `json:"running_age"`
	Mahadasha  int    `json:"mahadasha"`
	Antardasha int    `json:"antardasha"`
}

// MahadashaCycle returns the nine period labels starting at the fully reduced
// root number and wrapping from 9 back to 1.
func MahadashaCycle(b Birthdate) [CycleLength]int {
	var cycle [CycleLength]int
	label := cycleStart(b)
	for i := range cycle {
		cycle[i] = label
		label++
		if label > 9 {
			label = 1
		}
	}
	return cycle
}

// MahadashaPeriods walks forward from the birthdate for numCycles repetitions
// of the cycle. Each period lasts as many years as its label.
func MahadashaPeriods(b Birthdate, numCycles int) []Period {
	if numCycles <= 0 {
		return []Period{}
	}
	cycle := MahadashaCycle(b)
	periods := make([]Period, 0, numCycles*CycleLength)

	elapsed := 0
	for i := 0; i < numCycles; i++ {
		for _, duration := range cycle {
			start := b.anniversary(b.Year() + elapsed)
			end := b.anniversary(b.Year() + elapsed + duration)
			periods = append(periods, Period{
				StartDate:  start.Format(dateLayout),
				EndDate:    end.Format(dateLayout),
				Duration:   duration,
				RunningAge: fmt.Sprintf("%d - %d", elapsed, elapsed+duration),
			})
			elapsed += duration
		}
	}
	return periods
}

// YearlyPeriods produces one row per calendar year starting at the birth
// year. The active Mahadasha advances once the years spent in it reach its
// label; the Antardasha is derived from that year's birthday weekday.
func YearlyPeriods(b Birthdate, numYears int) []YearRow {
	if numYears <= 0 {
		return []YearRow{}
	}
	cycle := MahadashaCycle(b)
	rows := make([]YearRow, 0, numYears)

	idx := 0
	periodStart := b.Year()
	for i := 0; i < numYears; i++ {
		year := b.Year() + i
		if year-periodStart >= cycle[idx] {
			idx = (idx + 1) % CycleLength
			periodStart = year
		}
		birthday := b.anniversary(year)
		rows = append(rows, YearRow{
			Year:       year,
			StartDate:  birthday.Format("02-01-2006"),
			RunningAge: i + 1,
			Mahadasha:  cycle[idx],
			Antardasha: Antardasha(b, year),
		})
	}
	return rows
}

// Antardasha computes the sub-period label for the birthday in year:
// day + month + two-digit year + weekday offset, fully reduced.
func Antardasha(b Birthdate, year int) int {
	weekday := b.anniversary(year).Weekday()
	sum := b.Day() + int(b.Month()) + year%100 + WeekdayOffset(weekday)
	return MustReduce(sum, NoMasters())
}
