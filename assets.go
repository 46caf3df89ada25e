package numerology

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-numerology/pkg/apispec"
	"github.com/goliatone/go-numerology/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and grid script the HTML page links to.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(numerology.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// LoadAPIDescription loads and validates the embedded OpenAPI document for
// the HTTP endpoints.
func LoadAPIDescription(ctx context.Context) (*apispec.Document, error) {
	return apispec.Load(ctx)
}
