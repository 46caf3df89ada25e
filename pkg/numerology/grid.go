package numerology

import (
	"fmt"
	"strconv"
	"strings"
)

// GridSize is the number of rows and columns of the Vedic grid.
const GridSize = 3

// Grid holds the rendered cell strings of a Vedic grid. Arrays are values, so
// passing a Grid never shares cells with the caller.
type Grid [GridSize][GridSize]string

// LayoutMatrix is the numeric arrangement of the grid.
type LayoutMatrix [GridSize][GridSize]int

var layout = LayoutMatrix{
	{3, 1, 9},
	{6, 7, 5},
	{2, 8, 4},
}

// Layout returns the fixed base-digit arrangement [[3,1,9],[6,7,5],[2,8,4]].
func Layout() LayoutMatrix {
	return layout
}

// Rows converts the grid to nested slices, the shape used by templates and
// JSON payloads.
func (g Grid) Rows() [][]string {
	out := make([][]string, GridSize)
	for r := range g {
		out[r] = append([]string(nil), g[r][:]...)
	}
	return out
}

// Rows converts the layout to nested slices.
func (l LayoutMatrix) Rows() [][]int {
	out := make([][]int, GridSize)
	for r := range l {
		out[r] = append([]int(nil), l[r][:]...)
	}
	return out
}

// GridFromRows validates a 3x3 slice shape and copies it into a Grid.
func GridFromRows(rows [][]string) (Grid, error) {
	var g Grid
	if len(rows) != GridSize {
		return g, invalidGrid(fmt.Errorf("expected %d rows, got %d", GridSize, len(rows)))
	}
	for r, row := range rows {
		if len(row) != GridSize {
			return g, invalidGrid(fmt.Errorf("row %d: expected %d cells, got %d", r, GridSize, len(row)))
		}
		copy(g[r][:], row)
	}
	return g, nil
}

func invalidGrid(err error) error {
	return &OpError{
		Op:    "numerology.grid",
		Kind:  KindInvalidGridPayload,
		Field: "base_grid",
		Err:   err,
	}
}

// RootPolicy controls whether the root number joins the grid digits.
type RootPolicy string

const (
	// RootConditional adds the root number only for days above 9 that are
	// not 10, 20 or 30.
	RootConditional RootPolicy = "conditional"
	// RootAlways adds the root number for every birthdate.
	RootAlways RootPolicy = "always"
)

// ParseRootPolicy maps a configuration string to a RootPolicy. The empty
// string selects RootConditional.
func ParseRootPolicy(raw string) (RootPolicy, error) {
	switch RootPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RootConditional:
		return RootConditional, nil
	case RootAlways:
		return RootAlways, nil
	default:
		return "", fmt.Errorf("numerology: unknown grid root policy %q", raw)
	}
}

// GridOptions tunes the grid generator.
type GridOptions struct {
	RootPolicy RootPolicy
}

func (o GridOptions) includesRoot(b Birthdate) bool {
	if o.RootPolicy == RootAlways {
		return true
	}
	day := b.Day()
	return day > 9 && day%10 != 0
}

// GridValues returns the values counted by the grid: the digits of the date
// string followed by the destiny number and, depending on the policy, the
// root number, with the two century digits removed.
func GridValues(b Birthdate, opts GridOptions) []int {
	values := b.digits()
	values = append(values, DestinyNumber(b))
	if opts.includesRoot(b) {
		values = append(values, RootNumber(b))
	}
	return values[2:]
}

// GridFrequencies counts how often each digit 1..9 occurs in GridValues. Index
// 0 is unused.
func GridFrequencies(b Birthdate, opts GridOptions) [10]int {
	var freq [10]int
	for _, v := range GridValues(b, opts) {
		if v >= 1 && v <= 9 {
			freq[v]++
		}
	}
	return freq
}

// GenerateGrid renders each layout cell as its digit repeated by frequency.
// Digits that never occur render as "".
func GenerateGrid(b Birthdate, opts GridOptions) Grid {
	freq := GridFrequencies(b, opts)
	var g Grid
	for r, row := range layout {
		for c, digit := range row {
			g[r][c] = strings.Repeat(strconv.Itoa(digit), freq[digit])
		}
	}
	return g
}

// AnnotateGrid appends the mahadasha digit to every cell whose layout value
// equals mahadasha and, independently, the antardasha digit to every cell
// whose layout value equals antardasha. A cell matching both receives both.
func AnnotateGrid(grid Grid, mahadasha, antardasha int) Grid {
	out := grid
	for r, row := range layout {
		for c, digit := range row {
			if digit == mahadasha {
				out[r][c] += strconv.Itoa(mahadasha)
			}
			if digit == antardasha {
				out[r][c] += strconv.Itoa(antardasha)
			}
		}
	}
	return out
}

// MissingNumbers lists, ascending, the digits 1..9 that do not appear in the
// date string. Destiny and root numbers are not considered.
func MissingNumbers(b Birthdate) []int {
	var seen [10]bool
	for _, d := range b.digits() {
		seen[d] = true
	}
	missing := make([]int, 0, 9)
	for d := 1; d <= 9; d++ {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	return missing
}
