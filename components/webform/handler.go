package webform

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/orchestrator"
	"github.com/goliatone/go-numerology/pkg/render"
	"github.com/goliatone/go-numerology/pkg/renderers/jsonview"
)

const (
	defaultJSONRenderer = "json"
	jsonContentType     = "application/json; charset=utf-8"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a handler serving every route relative to "/" with default
// options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	mux := http.NewServeMux()
	// RegisterRoutesWithOptions only fails on a nil mux.
	_, _ = RegisterRoutesWithOptions(mux, opts.BasePath, opts)
	return mux
}

type handlers struct {
	opts   Options
	routes Routes
	orch   *orchestrator.Orchestrator
	log    *zap.Logger
}

func newHandlers(opts Options) *handlers {
	return &handlers{
		opts:   opts,
		routes: routesFor(opts.BasePath, opts),
		orch:   opts.Orchestrator,
		log:    opts.Logger,
	}
}

func (h *handlers) form(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.routes.Form {
		http.NotFound(w, r)
		return
	}
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if !h.guard(w, r) {
		return
	}

	req := h.request(r, "", "")
	req.Renderer = h.rendererFor(r, nil)
	out, err := h.orch.Form(r.Context(), req)
	if err != nil {
		h.fail(w, r, "render form", err)
		return
	}
	writeOutput(w, r, http.StatusOK, out)
}

type resultPayload struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Format    string `json:"format"`
}

func (h *handlers) result(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if !h.guard(w, r) {
		return
	}

	payload, err := h.decodeResult(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	req := h.request(r, payload.Name, payload.Birthdate)
	req.Renderer = h.rendererFor(r, &payload)

	out, err := h.orch.Generate(r.Context(), req)
	if err == nil {
		writeOutput(w, r, http.StatusOK, out)
		return
	}
	if !isInputError(err) {
		h.fail(w, r, "generate result", err)
		return
	}

	h.log.Debug("result rejected",
		zap.String("field", numerology.FieldOf(err)),
		zap.Error(err),
	)
	req.RenderOptions = render.MapValidationError(err).Options(req.RenderOptions)
	out, renderErr := h.orch.Form(r.Context(), req)
	if renderErr != nil {
		h.fail(w, r, "render form errors", renderErr)
		return
	}
	status := http.StatusUnprocessableEntity
	if req.Renderer != "" && req.Renderer == h.jsonRenderer() {
		status = http.StatusBadRequest
	}
	writeOutput(w, r, status, out)
}

func (h *handlers) decodeResult(w http.ResponseWriter, r *http.Request) (resultPayload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	if isJSONBody(r) {
		var payload resultPayload
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return resultPayload{}, &numerology.OpError{
				Op:   "webform.result",
				Kind: numerology.KindInvalidInput,
				Err:  err,
			}
		}
		return payload, nil
	}

	if err := r.ParseForm(); err != nil {
		return resultPayload{}, &numerology.OpError{
			Op:   "webform.result",
			Kind: numerology.KindInvalidInput,
			Err:  err,
		}
	}
	return resultPayload{
		Name:      r.PostForm.Get("name"),
		Birthdate: r.PostForm.Get("birthdate"),
		Format:    r.PostForm.Get(h.opts.FormatParam),
	}, nil
}

func (h *handlers) assets(prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.FS(h.opts.Assets)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (h *handlers) request(r *http.Request, name, birthdate string) orchestrator.Request {
	return orchestrator.Request{
		Name:         name,
		Birthdate:    birthdate,
		ThemeVariant: r.URL.Query().Get(h.opts.VariantParam),
		RenderOptions: render.RenderOptions{
			Action:        h.routes.Result,
			UpdateGridURL: h.routes.UpdateGrid,
			AssetsURL:     strings.TrimRight(h.routes.Assets, "/"),
		},
	}
}

// rendererFor picks JSON when the format parameter asks for it or the client
// prefers application/json; otherwise the orchestrator default applies.
func (h *handlers) rendererFor(r *http.Request, payload *resultPayload) string {
	format := r.URL.Query().Get(h.opts.FormatParam)
	if payload != nil && payload.Format != "" {
		format = payload.Format
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return h.jsonRenderer()
	case "html":
		return ""
	}
	if acceptsJSON(r) {
		return h.jsonRenderer()
	}
	return ""
}

// jsonRenderer names the registered renderer producing application/json.
func (h *handlers) jsonRenderer() string {
	if renderer, ok := h.orch.Registry().ForContentType("application/json"); ok {
		return renderer.Name()
	}
	return defaultJSONRenderer
}

func (h *handlers) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.opts.Guard == nil {
		return true
	}
	if err := h.opts.Guard(r); err != nil {
		writeGuardError(w, err)
		return false
	}
	return true
}

func (h *handlers) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSONError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	h.log.Debug("bad request", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSONError(w, http.StatusBadRequest, err)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.log.Error("webform: "+action,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeOutput(w http.ResponseWriter, r *http.Request, status int, out orchestrator.Output) {
	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out.Body)
}

// writeJSONError writes the same {"error", "fields"} body the JSON renderer
// produces for validation failures.
func writeJSONError(w http.ResponseWriter, status int, err error) {
	mapping := render.MapValidationError(err)
	payload := jsonview.ErrorPayload{Error: http.StatusText(status), Fields: mapping.Fields}
	switch {
	case len(mapping.Form) > 0:
		payload.Error = mapping.Form[0]
	default:
		for _, msgs := range mapping.Fields {
			if len(msgs) > 0 {
				payload.Error = msgs[0]
				break
			}
		}
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func isInputError(err error) bool {
	return numerology.IsKind(err, numerology.KindInvalidDate) ||
		numerology.IsKind(err, numerology.KindInvalidInput)
}

func isJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func acceptsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == "application/json" {
			return true
		}
		if mediaType == "text/html" {
			return false
		}
	}
	return false
}
