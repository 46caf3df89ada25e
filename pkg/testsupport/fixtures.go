// Package testsupport holds helpers shared by renderer and handler tests:
// diffs, template output capture and canned readings.
package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

// MustCompute builds a reading with the given calculator options and fails the
// test on error.
func MustCompute(t *testing.T, name, birthdate string, opts ...numerology.Option) numerology.Result {
	t.Helper()

	result, err := numerology.NewCalculator(opts...).Compute(name, birthdate)
	if err != nil {
		t.Fatalf("compute %q %q: %v", name, birthdate, err)
	}
	return result
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
