// Package config loads the service configuration from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Numerology NumerologyConfig `yaml:"numerology"`
	Theme      ThemeConfig      `yaml:"theme"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	BasePath          string        `yaml:"base_path"`
	ShutdownGrace     time.Duration `yaml:"shutdown_grace"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type NumerologyConfig struct {
	Mode           string `yaml:"mode"`
	GridRootPolicy string `yaml:"grid_root_policy"`
	Cycles         int    `yaml:"cycles"`
	Years          int    `yaml:"years"`
}

type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			BasePath:          "/",
			ShutdownGrace:     5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Numerology: NumerologyConfig{
			Mode:           string(numerology.ModeCalendar),
			GridRootPolicy: string(numerology.RootConditional),
			Cycles:         numerology.DefaultCycles,
			Years:          numerology.DefaultYears,
		},
		Theme: ThemeConfig{
			Name:    "default",
			Variant: "light",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load overlays the YAML file at path on Default. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &OpError{
			Op:   "config.load",
			Kind: KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &OpError{
			Op:   "config.load",
			Kind: KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := cfg.Validate(); err != nil {
		var oe *OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports the first invalid one.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return invalid("server.addr", errors.New("address is required"))
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return invalid("server.base_path", fmt.Errorf("%q must start with /", c.Server.BasePath))
	}
	if c.Server.ShutdownGrace <= 0 {
		return invalid("server.shutdown_grace", fmt.Errorf("must be positive, got %s", c.Server.ShutdownGrace))
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return invalid("server.read_header_timeout", fmt.Errorf("must not be negative, got %s", c.Server.ReadHeaderTimeout))
	}
	if _, err := numerology.ParseMode(c.Numerology.Mode); err != nil {
		return invalid("numerology.mode", err)
	}
	if _, err := numerology.ParseRootPolicy(c.Numerology.GridRootPolicy); err != nil {
		return invalid("numerology.grid_root_policy", err)
	}
	if c.Numerology.Cycles <= 0 {
		return invalid("numerology.cycles", fmt.Errorf("must be positive, got %d", c.Numerology.Cycles))
	}
	if c.Numerology.Years <= 0 {
		return invalid("numerology.years", fmt.Errorf("must be positive, got %d", c.Numerology.Years))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err)
	}
	return nil
}

// CalculatorOptions translates the numerology section into calculator
// options. Validate must have succeeded.
func (c Config) CalculatorOptions() []numerology.Option {
	mode, _ := numerology.ParseMode(c.Numerology.Mode)
	policy, _ := numerology.ParseRootPolicy(c.Numerology.GridRootPolicy)
	return []numerology.Option{
		numerology.WithMode(mode),
		numerology.WithRootPolicy(policy),
		numerology.WithCycles(c.Numerology.Cycles),
		numerology.WithYears(c.Numerology.Years),
	}
}
