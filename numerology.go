// Package numerology is the top-level entry point: it computes readings and
// renders them without callers wiring the orchestrator themselves.
package numerology

import (
	"context"

	pkgnumerology "github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/orchestrator"
	"github.com/goliatone/go-numerology/pkg/render"
)

// Result is a computed reading.
type Result = pkgnumerology.Result

// Grid is an annotated 3x3 Vedic grid.
type Grid = pkgnumerology.Grid

// RenderOptions describes per-request overrides that renderers use to echo
// validation errors and endpoint URLs.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Compute parses birthdate and returns the reading for name.
func Compute(name, birthdate string, options ...pkgnumerology.Option) (Result, error) {
	return pkgnumerology.NewCalculator(options...).Compute(name, birthdate)
}

// GenerateHTML computes the reading and renders it with the named renderer
// ("vanilla" or "json" unless the options register others). It is the
// simplest entry point for callers that just want a page.
func GenerateHTML(ctx context.Context, name, birthdate, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Name:      name,
		Birthdate: birthdate,
		Renderer:  rendererName,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// UpdateGrid re-annotates a rendered grid for the selected Mahadasha and
// Antardasha labels.
func UpdateGrid(ctx context.Context, baseGrid [][]string, mahadasha, antardasha int) (Grid, error) {
	return orchestrator.New().UpdateGrid(ctx, baseGrid, mahadasha, antardasha)
}

// WithThemeSelector passes a theme selector through to the orchestrator.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithCalculatorOptions forwards calculator settings (mode, root policy,
// cycles, years) to the orchestrator.
func WithCalculatorOptions(options ...pkgnumerology.Option) orchestrator.Option {
	return orchestrator.WithCalculatorOptions(options...)
}
