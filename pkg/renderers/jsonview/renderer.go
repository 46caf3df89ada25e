// Package jsonview renders readings and validation failures as JSON for API
// clients.
package jsonview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-numerology/pkg/render"
)

const defaultErrorMessage = "invalid input"

// ErrorPayload is the body written when RenderOptions carry validation
// errors.
type ErrorPayload struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty-prints output using the given indent string.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer for application/json.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render writes the error payload when errors are present, otherwise the
// reading, otherwise the echoed form values.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload any
	switch {
	case opts.HasErrors():
		payload = errorPayload(opts)
	case view.HasResult():
		payload = view.Result
	default:
		payload = view.Form
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("jsonview: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func errorPayload(opts render.RenderOptions) ErrorPayload {
	out := ErrorPayload{Error: defaultErrorMessage}
	if len(opts.FormErrors) > 0 {
		out.Error = opts.FormErrors[0]
	} else {
		for _, field := range []string{"birthdate", "name", "base_grid", "mahadasha", "antardasha"} {
			if msgs := opts.Errors[field]; len(msgs) > 0 {
				out.Error = msgs[0]
				break
			}
		}
	}
	if len(opts.Errors) > 0 {
		out.Fields = make(map[string][]string, len(opts.Errors))
		for field, msgs := range opts.Errors {
			out.Fields[field] = append([]string(nil), msgs...)
		}
	}
	return out
}
