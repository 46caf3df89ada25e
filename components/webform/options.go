package webform

import (
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-numerology/pkg/orchestrator"
	"github.com/goliatone/go-numerology/pkg/renderers/vanilla"
)

const (
	defaultFormPath       = "/"
	defaultResultPath     = "/result"
	defaultUpdateGridPath = "/update-grid"
	defaultAssetsPath     = "/static/"
	defaultFormatParam    = "format"
	defaultVariantParam   = "variant"
	defaultMaxBodyBytes   = 64 << 10
)

type GuardFunc func(r *http.Request) error

type Options struct {
	FormPath       string
	ResultPath     string
	UpdateGridPath string
	AssetsPath     string
	FormatParam    string
	VariantParam   string
	MaxBodyBytes   int64
	Guard          GuardFunc

	// BasePath is prefixed to the URLs rendered into the page. RegisterRoutes
	// sets it from its basePath argument.
	BasePath string

	Orchestrator *orchestrator.Orchestrator
	Assets       fs.FS
	Logger       *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		FormPath:       defaultFormPath,
		ResultPath:     defaultResultPath,
		UpdateGridPath: defaultUpdateGridPath,
		AssetsPath:     defaultAssetsPath,
		FormatParam:    defaultFormatParam,
		VariantParam:   defaultVariantParam,
		MaxBodyBytes:   defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.FormPath == "" {
		opts.FormPath = defaultFormPath
	}
	if opts.ResultPath == "" {
		opts.ResultPath = defaultResultPath
	}
	if opts.UpdateGridPath == "" {
		opts.UpdateGridPath = defaultUpdateGridPath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = defaultAssetsPath
	}
	if opts.FormatParam == "" {
		opts.FormatParam = defaultFormatParam
	}
	if opts.VariantParam == "" {
		opts.VariantParam = defaultVariantParam
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New()
	}
	if opts.Assets == nil {
		opts.Assets = vanilla.AssetsFS()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithFormPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormPath = path
	}
}

func WithResultPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ResultPath = path
	}
}

func WithUpdateGridPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.UpdateGridPath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

func WithAssets(files fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Assets = files
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
