package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-numerology/pkg/renderers/tui"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestComputeText(t *testing.T) {
	out, _, err := run(t, "compute", "John Smith", "1990-05-15")
	require.NoError(t, err)

	require.Contains(t, out, "Numerology reading for John Smith")
	require.Contains(t, out, "Mahadasha periods")
	require.Contains(t, out, "Cycle: 6 7 8 9 1 2 3 4 5")
	require.Contains(t, out, "| 6  | -  | 55 |")
}

func TestComputeJSON(t *testing.T) {
	out, _, err := run(t, "compute", "--format", "json", "--mode", "missing", "John Smith", "1990-05-15")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Equal(t, "missing", body["mode"])
	require.EqualValues(t, 8, body["chaldean_number"])
	require.EqualValues(t, 3, body["destiny_number"])
	require.EqualValues(t, 6, body["root_number"])
	require.Equal(t, []any{float64(2), float64(3), float64(4), float64(6), float64(7), float64(8)}, body["missing_numbers"])
}

func TestComputeHTMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reading.html")
	out, errOut, err := run(t, "compute", "-f", "html", "-o", path, "--variant", "dark", "Ann", "1990-05-15")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, errOut, "Reading written to "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "nm-variant-dark")
	require.Contains(t, string(b), "data-nm-destiny")
}

func TestComputeRejectsBadBirthdate(t *testing.T) {
	out, errOut, err := run(t, "compute", "Ann", "1990-02-30")
	require.ErrorIs(t, err, errReported)
	require.Empty(t, out)
	require.True(t, strings.HasPrefix(errOut, "error: birthdate: "), errOut)
}

func TestComputeArgs(t *testing.T) {
	_, _, err := run(t, "compute", "Ann")
	require.Error(t, err)

	_, _, err = run(t, "compute", "--format", "yaml", "Ann", "1990-05-15")
	require.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "compute", "--mode", "weekly", "Ann", "1990-05-15")
	require.ErrorContains(t, err, "numerology.mode")
}

func TestComputeUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numerology.yaml")
	require.NoError(t, os.WriteFile(path, []byte("numerology:\n  mode: yearly\n  years: 3\n"), 0o600))

	out, _, err := run(t, "--config", path, "compute", "-f", "json", "Ann", "1990-05-15")
	require.NoError(t, err)

	var body struct {
		Mode   string           `json:"mode"`
		Yearly []map[string]any `json:"yearly_periods"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Equal(t, "yearly", body.Mode)
	require.Len(t, body.Yearly, 3)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "numerology "), out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "version")
	require.ErrorContains(t, err, "parse level")
}

type scriptedDriver struct {
	inputs   []string
	selects  []int
	confirms []bool
	infos    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", tui.ErrAborted
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, nil
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestComputeInteractiveLoops(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"Ann", "1990-05-15", "Bob", "2024-01-01"},
		selects:  []int{2, 1},
		confirms: []bool{true, false},
	}
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdFor(&app{stdout: &stdout, stderr: &stderr, driver: driver})
	cmd.SetArgs([]string{"compute", "--interactive"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	require.Contains(t, out, "Numerology reading for Ann")
	require.Contains(t, out, "Mahadasha and Antardasha by year")
	require.Contains(t, out, "Numerology reading for Bob")
	require.Contains(t, out, "Missing numbers")
	require.Empty(t, driver.confirms)
}

func TestComputeInteractiveAbort(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdFor(&app{stdout: &stdout, stderr: &stderr, driver: &scriptedDriver{}})
	cmd.SetArgs([]string{"compute", "-i"})
	require.ErrorIs(t, cmd.Execute(), tui.ErrAborted)
}
