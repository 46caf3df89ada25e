package render

import (
	"context"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

// View is the presentation context handed to renderers. A nil Result renders
// the empty form.
type View struct {
	Form   FormValues
	Result *numerology.Result
}

// FormValues echoes the submitted inputs so the form can be re-rendered.
type FormValues struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
}

// HasResult reports whether the view carries a computed reading.
func (v View) HasResult() bool {
	return v.Result != nil
}

// Renderer converts a View into a byte representation (HTML, JSON, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
