package webform

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the mounted patterns.
type Routes struct {
	Form       string
	Result     string
	UpdateGrid string
	Assets     string
}

// MountPaths returns the full mount paths for the component routes under
// basePath.
func MountPaths(basePath string, fns ...OptionFn) Routes {
	opts := NewOptions(fns...)
	return routesFor(basePath, opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value. Callers are expected to pass an Options value
// produced by NewOptions so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("webform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	opts.BasePath = basePath
	h := newHandlers(opts)
	routes := routesFor(basePath, opts)

	mux.Handle(routes.Form, http.HandlerFunc(h.form))
	mux.Handle(routes.Result, http.HandlerFunc(h.result))
	mux.Handle(routes.UpdateGrid, http.HandlerFunc(h.updateGrid))
	mux.Handle(routes.Assets, h.assets(routes.Assets))
	return routes, nil
}

func routesFor(basePath string, opts Options) Routes {
	assets := mountPath(basePath, opts.AssetsPath)
	if !strings.HasSuffix(assets, "/") {
		assets += "/"
	}
	return Routes{
		Form:       mountPath(basePath, opts.FormPath),
		Result:     mountPath(basePath, opts.ResultPath),
		UpdateGrid: mountPath(basePath, opts.UpdateGridPath),
		Assets:     assets,
	}
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
