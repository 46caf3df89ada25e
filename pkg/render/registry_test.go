package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-numerology/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "json"}); !errors.Is(err, render.ErrDuplicate) {
		t.Fatalf("expected duplicate registration to fail, got %v", err)
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected missing renderer error, got %v", err)
	}
}

func TestRegistry_ForContentType(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json; charset=utf-8"})

	renderer, ok := registry.ForContentType("Application/JSON")
	if !ok || renderer.Name() != "json" {
		t.Fatalf("expected json renderer, got %v %v", renderer, ok)
	}
	if _, ok := registry.ForContentType("text/plain"); ok {
		t.Fatalf("did not expect a text/plain renderer")
	}
	if _, ok := registry.ForContentType("text"); ok {
		t.Fatalf("partial media types must not match")
	}
}

func TestView_HasResult(t *testing.T) {
	if (render.View{}).HasResult() {
		t.Fatalf("empty view must not report a result")
	}
}
