package tui

import (
	"context"
	"strings"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

// Input holds the values gathered by an interactive session.
type Input struct {
	Name      string
	Birthdate string
	Mode      numerology.Mode
}

// Prompt asks for a name, a birthdate and a mode, offering defaults as the
// pre-filled answers. The birthdate is validated before it is accepted.
func (r *Renderer) Prompt(ctx context.Context, defaults Input) (Input, error) {
	if r.driver == nil {
		return Input{}, ErrNoDriver
	}

	name, err := r.driver.Input(ctx, InputConfig{
		Message: r.theme.PromptPrefix + "Full name",
		Default: defaults.Name,
		Help:    "Letters are scored with the Chaldean table; other characters are ignored.",
	})
	if err != nil {
		return Input{}, err
	}

	birthdate, err := r.driver.Input(ctx, InputConfig{
		Message: r.theme.PromptPrefix + "Birthdate (YYYY-MM-DD)",
		Default: defaults.Birthdate,
		Validator: func(raw string) error {
			_, err := numerology.ParseBirthdate(raw)
			return err
		},
	})
	if err != nil {
		return Input{}, err
	}

	modes := numerology.Modes()
	options := make([]string, len(modes))
	defaultIdx := 0
	for i, m := range modes {
		options[i] = string(m)
		if m == defaults.Mode {
			defaultIdx = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.theme.PromptPrefix + "Report",
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return Input{}, err
	}
	mode := defaults.Mode
	if idx >= 0 && idx < len(modes) {
		mode = modes[idx]
	}
	if mode == "" {
		mode = numerology.ModeCalendar
	}

	return Input{
		Name:      strings.TrimSpace(name),
		Birthdate: strings.TrimSpace(birthdate),
		Mode:      mode,
	}, nil
}

// Confirm asks a yes/no question through the driver.
func (r *Renderer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if r.driver == nil {
		return false, ErrNoDriver
	}
	return r.driver.Confirm(ctx, ConfirmConfig{Message: r.theme.PromptPrefix + message, Default: def})
}

// Info prints a message through the driver.
func (r *Renderer) Info(ctx context.Context, msg string) error {
	if r.driver == nil {
		return ErrNoDriver
	}
	return r.driver.Info(ctx, msg)
}
