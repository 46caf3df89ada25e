package template

import (
	"io"
)

// TemplateRenderer executes named templates, or inline template source, with
// a data context. Output is returned and also copied to any writers given.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
