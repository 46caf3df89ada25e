package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/render"
	"github.com/goliatone/go-numerology/pkg/renderers/jsonview"
	"github.com/goliatone/go-numerology/pkg/renderers/vanilla"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCalculator injects a preconfigured calculator.
func WithCalculator(calc *numerology.Calculator) Option {
	return func(o *Orchestrator) {
		o.calculator = calc
	}
}

// WithCalculatorOptions configures the default calculator.
func WithCalculatorOptions(fns ...numerology.Option) Option {
	return func(o *Orchestrator) {
		o.calcOptions = append(o.calcOptions, fns...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector passes a selector used to resolve theme/variant choices
// ahead of rendering.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request leaves
// them empty.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// Orchestrator coordinates calculation and rendering. It applies defaults
// (vanilla and JSON renderers, built-in theme) while remaining open to
// dependency injection.
type Orchestrator struct {
	calculator      *numerology.Calculator
	calcOptions     []numerology.Option
	registry        *render.Registry
	defaultRenderer string
	themeSelector   ThemeSelector
	themeName       string
	themeVariant    string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a reading to compute and render.
type Request struct {
	Name      string
	Birthdate string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request settings such as endpoint URLs. Theme
	// is filled in by the orchestrator when left nil.
	RenderOptions render.RenderOptions
}

// Output is a rendered response.
type Output struct {
	Body        []byte
	ContentType string
	Renderer    string
	Result      *numerology.Result
}

// Generate computes the reading for req and renders it. Input errors are
// returned unrendered so callers can map them onto the form with Form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if err := o.ready(ctx); err != nil {
		return Output{}, err
	}

	result, err := o.calculator.Compute(req.Name, req.Birthdate)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: compute: %w", err)
	}

	view := render.View{
		Form:   render.FormValues{Name: req.Name, Birthdate: req.Birthdate},
		Result: &result,
	}
	out, err := o.render(ctx, req, view)
	if err != nil {
		return Output{}, err
	}
	out.Result = &result
	return out, nil
}

// Form renders the input form without a reading. Validation feedback travels
// in req.RenderOptions and the submitted values are echoed back.
func (o *Orchestrator) Form(ctx context.Context, req Request) (Output, error) {
	if err := o.ready(ctx); err != nil {
		return Output{}, err
	}
	view := render.View{
		Form: render.FormValues{Name: req.Name, Birthdate: req.Birthdate},
	}
	return o.render(ctx, req, view)
}

// UpdateGrid re-annotates a previously rendered grid with the given labels.
func (o *Orchestrator) UpdateGrid(ctx context.Context, baseGrid [][]string, mahadasha, antardasha int) (numerology.Grid, error) {
	if ctx == nil {
		return numerology.Grid{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return numerology.Grid{}, err
	}
	grid, err := numerology.GridFromRows(baseGrid)
	if err != nil {
		return numerology.Grid{}, fmt.Errorf("orchestrator: update grid: %w", err)
	}
	return numerology.AnnotateGrid(grid, mahadasha, antardasha), nil
}

// Calculator exposes the calculator in use.
func (o *Orchestrator) Calculator() *numerology.Calculator {
	return o.calculator
}

// Registry exposes the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		return o.initialiseErr
	}
	return nil
}

func (o *Orchestrator) render(ctx context.Context, req Request, view render.View) (Output, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return Output{}, err
		}
		opts.Theme = cfg
	}

	body, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{
		Body:        body,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
	}, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := firstNonEmpty(req.ThemeName, o.themeName)
	variant := firstNonEmpty(req.ThemeVariant, o.themeVariant)
	sel, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(sel), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.calculator == nil {
		o.calculator = numerology.NewCalculator(o.calcOptions...)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonview.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		o.themeSelector = DefaultThemeCatalog()
	}

	o.defaultsApplied = true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
