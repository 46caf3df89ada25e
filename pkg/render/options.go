package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the computed reading.
type RenderOptions struct {
	// Errors surfaces validation feedback keyed by form field ("name",
	// "birthdate"). The vanilla renderer prints these inline next to the
	// matching control.
	Errors map[string][]string
	// FormErrors are messages that do not belong to a single field.
	FormErrors []string
	// Theme carries the resolved go-theme selection. Renderers that do not
	// style their output ignore it.
	Theme *theme.RendererConfig
	// Action overrides the form submission target (defaults to "/result").
	Action string
	// UpdateGridURL is the endpoint the grid annotation script posts to.
	UpdateGridURL string
	// AssetsURL is the prefix under which embedded assets are served.
	AssetsURL string
}

// HasErrors reports whether any field or form-level message is present.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0 || len(o.FormErrors) > 0
}
