package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/render"
)

const emptyCell = "-"

// Renderer implements render.Renderer as a plain-text report for terminals and
// drives interactive input through a PromptDriver.
type Renderer struct {
	driver PromptDriver
	theme  Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the report for view. Without a result only validation
// messages are written.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if opts.HasErrors() {
		r.writeErrors(&buf, opts)
	}
	if view.HasResult() {
		if err := r.writeReport(&buf, *view.Result); err != nil {
			return nil, fmt.Errorf("tui: write report: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s%s\n", r.theme.HeadingPrefix, title)
}

func (r *Renderer) writeErrors(w io.Writer, opts render.RenderOptions) {
	for _, msg := range opts.FormErrors {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	fields := make([]string, 0, len(opts.Errors))
	for field := range opts.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range opts.Errors[field] {
			fmt.Fprintf(w, "error: %s: %s\n", field, msg)
		}
	}
}

func (r *Renderer) writeReport(w io.Writer, res numerology.Result) error {
	r.heading(w, "Numerology reading for "+displayName(res.Name))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Birthdate\t%s\n", res.Birthdate)
	fmt.Fprintf(tw, "Chaldean number\t%d\t%s\n", res.ChaldeanNumber, letterBreakdown(res.ChaldeanLetters))
	fmt.Fprintf(tw, "Destiny number\t%d\n", res.DestinyNumber)
	fmt.Fprintf(tw, "Root number\t%d\n", res.RootNumber)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	r.heading(w, "Vedic grid")
	writeGrid(w, res.VedicGrid)

	switch res.Mode {
	case numerology.ModeMissing:
		fmt.Fprintln(w)
		r.heading(w, "Missing numbers")
		if len(res.MissingNumbers) == 0 {
			fmt.Fprintln(w, "none")
		} else {
			fmt.Fprintln(w, joinInts(res.MissingNumbers, ", "))
		}
	case numerology.ModeYearly:
		fmt.Fprintln(w)
		r.heading(w, "Mahadasha and Antardasha by year")
		return writeYearly(w, res.YearlyPeriods)
	default:
		fmt.Fprintln(w)
		r.heading(w, "Mahadasha periods")
		fmt.Fprintf(w, "Cycle: %s\n", joinInts(res.Cycle, " "))
		return writePeriods(w, res.Periods)
	}
	return nil
}

func writeGrid(w io.Writer, rows [][]string) {
	width := 1
	for _, row := range rows {
		for _, cell := range row {
			if len(cell) > width {
				width = len(cell)
			}
		}
	}
	border := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", len(firstRow(rows)))
	fmt.Fprintln(w, border)
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("|")
		for _, cell := range row {
			if cell == "" {
				cell = emptyCell
			}
			fmt.Fprintf(&b, " %-*s |", width, cell)
		}
		fmt.Fprintln(w, b.String())
		fmt.Fprintln(w, border)
	}
}

func writePeriods(w io.Writer, periods []numerology.Period) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Start\tEnd\tDuration\tAge")
	for _, p := range periods {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.StartDate, p.EndDate, p.Duration, p.RunningAge)
	}
	return tw.Flush()
}

func writeYearly(w io.Writer, rows []numerology.YearRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Year\tBirthday\tAge\tMahadasha\tAntardasha")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", row.Year, row.StartDate, row.RunningAge, row.Mahadasha, row.Antardasha)
	}
	return tw.Flush()
}

func letterBreakdown(letters []numerology.LetterValue) string {
	parts := make([]string, 0, len(letters))
	for _, lv := range letters {
		parts = append(parts, lv.Letter+"="+strconv.Itoa(lv.Value))
	}
	return strings.Join(parts, " ")
}

func joinInts(values []int, sep string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, sep)
}

func firstRow(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(no name)"
	}
	return name
}
