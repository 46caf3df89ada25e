package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-numerology/internal/config"
	"github.com/goliatone/go-numerology/internal/logging"
	"github.com/goliatone/go-numerology/pkg/renderers/tui"
)

// errReported marks failures whose details were already written for the user.
var errReported = errors.New("numerology: reported")

// app holds state shared by the subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	verbose    bool

	logger *zap.Logger
	level  zap.AtomicLevel
	// logOutput overrides stderr for the logger. Tests set it.
	logOutput io.Writer
	// driver replaces the survey prompts in tests.
	driver tui.PromptDriver
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newRootCmdFor(&app{stdout: stdout, stderr: stderr})
}

func newRootCmdFor(a *app) *cobra.Command {
	stdout, stderr := a.stdout, a.stderr

	root := &cobra.Command{
		Use:   "numerology",
		Short: "Chaldean and Vedic numerology readings",
		Long: `numerology computes the Chaldean name number, the destiny and root
numbers, the Vedic grid and the Mahadasha/Antardasha timelines for a name and
a birthdate. Run "numerology serve" for the web form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newComputeCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) initLogger() error {
	level := a.logLevel
	if level == "" {
		level = "warn"
	}
	if a.verbose {
		level = zapcore.DebugLevel.String()
	}
	out := a.logOutput
	if out == nil {
		out = a.stderr
	}
	logger, atom, err := logging.New(logging.Options{Level: level, Output: out})
	if err != nil {
		return err
	}
	a.logger = logger
	a.level = atom
	return nil
}

// loadConfig reads --config and lets an explicit --log-level or --verbose win
// over the file's log level.
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if a.verbose || a.logLevel != "" {
		return cfg, nil
	}
	if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		a.level.SetLevel(lvl)
	}
	return cfg, nil
}
