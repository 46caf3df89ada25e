package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-numerology/internal/config"
	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/orchestrator"
	"github.com/goliatone/go-numerology/pkg/render"
	"github.com/goliatone/go-numerology/pkg/renderers/jsonview"
	"github.com/goliatone/go-numerology/pkg/renderers/tui"
	"github.com/goliatone/go-numerology/pkg/renderers/vanilla"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
)

type computeFlags struct {
	mode        string
	format      string
	output      string
	theme       string
	variant     string
	interactive bool
}

func newComputeCmd(a *app) *cobra.Command {
	var flags computeFlags
	cmd := &cobra.Command{
		Use:   "compute [NAME BIRTHDATE]",
		Short: "Compute a reading for a name and a YYYY-MM-DD birthdate",
		Example: `  numerology compute "Asha Rao" 1990-05-15
  numerology compute --mode yearly --format json "Asha Rao" 1990-05-15
  numerology compute --interactive`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.interactive {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compute(cmd.Context(), flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "report to attach (calendar, yearly, missing)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format (text, json, html)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name for html output")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant for html output")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for the inputs")
	return cmd
}

// reading holds what one compute invocation needs to produce output.
type reading struct {
	app      *app
	cfg      config.Config
	flags    computeFlags
	registry *render.Registry
	renderer string
	prompter *tui.Renderer
}

func (a *app) compute(ctx context.Context, flags computeFlags, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if flags.mode != "" {
		cfg.Numerology.Mode = flags.mode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mediaType, err := mediaTypeForFormat(flags.format)
	if err != nil {
		return err
	}

	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.stdout)
	}
	prompter := tui.New(tui.WithPromptDriver(driver))
	registry := render.NewRegistry()
	registry.MustRegister(prompter)
	registry.MustRegister(jsonview.New(jsonview.WithIndent("  ")))
	html, err := vanilla.New()
	if err != nil {
		return err
	}
	registry.MustRegister(html)
	renderer, ok := registry.ForContentType(mediaType)
	if !ok {
		return fmt.Errorf("no renderer for %s", mediaType)
	}

	rd := &reading{
		app:      a,
		cfg:      cfg,
		flags:    flags,
		registry: registry,
		renderer: renderer.Name(),
		prompter: prompter,
	}

	var name, birthdate string
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		birthdate = args[1]
	}
	if flags.interactive {
		return rd.interactive(ctx, name, birthdate)
	}
	mode, _ := numerology.ParseMode(cfg.Numerology.Mode)
	return rd.run(ctx, name, birthdate, mode)
}

// interactive prompts for inputs, prints the reading and offers another until
// the user declines. Rejected inputs are reported and prompted again.
func (rd *reading) interactive(ctx context.Context, name, birthdate string) error {
	mode, _ := numerology.ParseMode(rd.cfg.Numerology.Mode)
	defaults := tui.Input{Name: name, Birthdate: birthdate, Mode: mode}
	for {
		input, err := rd.prompter.Prompt(ctx, defaults)
		if err != nil {
			return err
		}
		err = rd.run(ctx, input.Name, input.Birthdate, input.Mode)
		switch {
		case err == nil:
		case errors.Is(err, errReported):
			_ = rd.prompter.Info(ctx, "Please try again.")
			defaults = input
			continue
		default:
			return err
		}

		again, err := rd.prompter.Confirm(ctx, "Compute another reading?", false)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		defaults = tui.Input{Mode: input.Mode}
	}
}

func (rd *reading) run(ctx context.Context, name, birthdate string, mode numerology.Mode) error {
	a := rd.app
	orch := orchestrator.New(
		orchestrator.WithRegistry(rd.registry),
		orchestrator.WithDefaultRenderer(rd.renderer),
		orchestrator.WithCalculatorOptions(append(rd.cfg.CalculatorOptions(), numerology.WithMode(mode))...),
		orchestrator.WithThemeDefaults(rd.cfg.Theme.Name, rd.cfg.Theme.Variant),
	)
	req := orchestrator.Request{
		Name:         name,
		Birthdate:    birthdate,
		Renderer:     rd.renderer,
		ThemeName:    rd.flags.theme,
		ThemeVariant: rd.flags.variant,
	}

	out, err := orch.Generate(ctx, req)
	if err != nil {
		if !isInputError(err) {
			return err
		}
		a.logger.Debug("input rejected", zap.String("field", numerology.FieldOf(err)), zap.Error(err))
		req.RenderOptions = render.MapValidationError(err).Options(req.RenderOptions)
		out, err = orch.Form(ctx, req)
		if err != nil {
			return err
		}
		if err := writeBody(a.stderr, "", out.Body); err != nil {
			return err
		}
		return errReported
	}

	a.logger.Debug("reading computed",
		zap.String("renderer", out.Renderer),
		zap.String("mode", string(out.Result.Mode)),
	)
	if err := writeBody(a.stdout, rd.flags.output, out.Body); err != nil {
		return err
	}
	if rd.flags.output != "" {
		_, _ = fmt.Fprintf(a.stderr, "Reading written to %s\n", rd.flags.output)
	}
	return nil
}

func mediaTypeForFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatText:
		return "text/plain", nil
	case formatJSON:
		return "application/json", nil
	case formatHTML:
		return "text/html", nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or html)", format)
	}
}

func writeBody(w io.Writer, path string, body []byte) error {
	if path != "" {
		return os.WriteFile(path, body, 0o644)
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func isInputError(err error) bool {
	return numerology.IsKind(err, numerology.KindInvalidDate) ||
		numerology.IsKind(err, numerology.KindInvalidInput)
}
