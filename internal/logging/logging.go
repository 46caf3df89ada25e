// Package logging builds the zap logger and the HTTP access log middleware.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level       string
	Development bool
	// Output overrides the sink. Used by tests and the CLI to capture logs.
	Output io.Writer
}

// New builds a logger from the production config, or the development config
// when requested, at the given level. The returned AtomicLevel can change the
// level at runtime.
func New(opts Options) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("logging: parse level: %w", err)
	}
	atom := zap.NewAtomicLevelAt(level)

	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = atom

	if opts.Output != nil {
		encoder := zapcore.NewJSONEncoder(cfg.EncoderConfig)
		if opts.Development {
			encoder = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		}
		core := zapcore.NewCore(encoder, zapcore.AddSync(opts.Output), atom)
		return zap.New(core), atom, nil
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, atom, nil
}
