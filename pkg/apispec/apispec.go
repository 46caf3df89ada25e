// Package apispec loads the embedded OpenAPI description of the HTTP API and
// serves it as JSON.
package apispec

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var embeddedSpec []byte

// Operation summarises one documented route.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Document is a loaded and validated OpenAPI description.
type Document struct {
	spec *openapi3.T
	json []byte
}

// Raw returns the embedded YAML source.
func Raw() []byte {
	out := make([]byte, len(embeddedSpec))
	copy(out, embeddedSpec)
	return out
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadData(ctx, embeddedSpec)
}

// LoadData parses and validates an OpenAPI document from raw YAML or JSON.
func LoadData(ctx context.Context, raw []byte) (*Document, error) {
	if ctx == nil {
		return nil, errors.New("apispec: context is required")
	}
	if len(raw) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("apispec: document does not contain any paths")
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}

	payload, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apispec: encode json: %w", err)
	}
	return &Document{spec: spec, json: payload}, nil
}

// Spec exposes the parsed document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// Title returns info.title.
func (d *Document) Title() string {
	if d == nil || d.spec == nil || d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// JSON returns the document encoded as JSON.
func (d *Document) JSON() []byte {
	out := make([]byte, len(d.json))
	copy(out, d.json)
	return out
}

// Operations lists documented operations sorted by path then method.
func (d *Document) Operations() []Operation {
	if d == nil || d.spec == nil || d.spec.Paths == nil {
		return nil
	}
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{
				ID:      id,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Handler serves the document as application/json.
func (d *Document) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(d.json)
	})
}
