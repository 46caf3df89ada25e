package numerology

import (
	"fmt"
	"strings"
)

// Mode selects which period table (or missing-number list) accompanies a
// reading.
type Mode string

const (
	// ModeCalendar attaches calendar-duration Mahadasha periods.
	ModeCalendar Mode = "calendar"
	// ModeMissing attaches the digits absent from the birthdate.
	ModeMissing Mode = "missing"
	// ModeYearly attaches the year-by-year Mahadasha/Antardasha table.
	ModeYearly Mode = "yearly"
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeCalendar, ModeMissing, ModeYearly}
}

// ParseMode maps a configuration string to a Mode. The empty string selects
// ModeCalendar.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeCalendar:
		return ModeCalendar, nil
	case ModeMissing:
		return ModeMissing, nil
	case ModeYearly:
		return ModeYearly, nil
	default:
		return "", fmt.Errorf("numerology: unknown mode %q", raw)
	}
}

// Options configures a Calculator.
type Options struct {
	Mode       Mode
	RootPolicy RootPolicy
	Cycles     int
	Years      int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns calendar mode, conditional root inclusion, two cycles
// and one hundred yearly rows.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeCalendar,
		RootPolicy: RootConditional,
		Cycles:     DefaultCycles,
		Years:      DefaultYears,
	}
}

// NewOptions applies fns over DefaultOptions and restores defaults for empty
// or non-positive values.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Mode == "" {
		opts.Mode = ModeCalendar
	}
	if opts.RootPolicy == "" {
		opts.RootPolicy = RootConditional
	}
	if opts.Cycles <= 0 {
		opts.Cycles = DefaultCycles
	}
	if opts.Years <= 0 {
		opts.Years = DefaultYears
	}
	return opts
}

func WithMode(mode Mode) Option {
	return func(o *Options) { o.Mode = mode }
}

func WithRootPolicy(policy RootPolicy) Option {
	return func(o *Options) { o.RootPolicy = policy }
}

func WithCycles(n int) Option {
	return func(o *Options) { o.Cycles = n }
}

func WithYears(n int) Option {
	return func(o *Options) { o.Years = n }
}

// Result is everything a reading produces. Exactly one of Periods,
// MissingNumbers and YearlyPeriods is populated, according to Mode.
type Result struct {
	Name            string        `json:"name"`
	Birthdate       Birthdate     `json:"birthdate"`
	Mode            Mode          `json:"mode"`
	ChaldeanNumber  int           `json:"chaldean_number"`
	ChaldeanLetters []LetterValue `json:"chaldean_letters,omitempty"`
	DestinyNumber   int           `json:"destiny_number"`
	RootNumber      int           `json:"root_number"`
	VedicGrid       [][]string    `json:"vedic_grid"`
	GridLayout      [][]int       `json:"grid_layout"`
	Cycle           []int         `json:"mahadasha_cycle"`
	Periods         []Period      `json:"mahadasha_periods,omitempty"`
	MissingNumbers  []int         `json:"missing_numbers,omitempty"`
	YearlyPeriods   []YearRow     `json:"yearly_periods,omitempty"`
}

// Calculator assembles Results for a fixed set of options.
type Calculator struct {
	opts Options
}

// NewCalculator constructs a Calculator from DefaultOptions plus overrides.
func NewCalculator(fns ...Option) *Calculator {
	return &Calculator{opts: NewOptions(fns...)}
}

// Options returns the calculator configuration.
func (c *Calculator) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Compute validates the birthdate and builds the reading for name.
func (c *Calculator) Compute(name, birthdate string) (Result, error) {
	b, err := ParseBirthdate(birthdate)
	if err != nil {
		return Result{}, err
	}
	return c.ComputeDate(name, b), nil
}

// ComputeDate builds the reading for an already validated birthdate.
func (c *Calculator) ComputeDate(name string, b Birthdate) Result {
	opts := c.Options()

	chaldean, letters := ChaldeanBreakdown(name)
	cycle := MahadashaCycle(b)
	result := Result{
		Name:            name,
		Birthdate:       b,
		Mode:            opts.Mode,
		ChaldeanNumber:  chaldean,
		ChaldeanLetters: letters,
		DestinyNumber:   DestinyNumber(b),
		RootNumber:      RootNumber(b),
		VedicGrid:       GenerateGrid(b, GridOptions{RootPolicy: opts.RootPolicy}).Rows(),
		GridLayout:      Layout().Rows(),
		Cycle:           cycle[:],
	}

	switch opts.Mode {
	case ModeMissing:
		result.MissingNumbers = MissingNumbers(b)
	case ModeYearly:
		result.YearlyPeriods = YearlyPeriods(b, opts.Years)
	default:
		result.Periods = MahadashaPeriods(b, opts.Cycles)
	}
	return result
}
