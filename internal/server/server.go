// Package server wires the web form component, the API description and the
// access log into one http.Server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-numerology/components/webform"
	"github.com/goliatone/go-numerology/internal/config"
	"github.com/goliatone/go-numerology/internal/logging"
	"github.com/goliatone/go-numerology/pkg/apispec"
	"github.com/goliatone/go-numerology/pkg/orchestrator"
)

const (
	HealthPath  = "/healthz"
	OpenAPIPath = "/openapi.json"
)

type Server struct {
	cfg     config.Config
	logger  *zap.Logger
	handler http.Handler
	routes  webform.Routes
	doc     *apispec.Document
}

// New builds the handler tree for cfg. cfg must already be valid.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := apispec.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("server: load api description: %w", err)
	}

	orch := orchestrator.New(
		orchestrator.WithCalculatorOptions(cfg.CalculatorOptions()...),
		orchestrator.WithThemeDefaults(cfg.Theme.Name, cfg.Theme.Variant),
	)

	mux := http.NewServeMux()
	routes, err := webform.RegisterRoutes(mux, cfg.Server.BasePath,
		webform.WithOrchestrator(orch),
		webform.WithLogger(logger.Named("webform")),
	)
	if err != nil {
		return nil, fmt.Errorf("server: register routes: %w", err)
	}
	mux.Handle(join(cfg.Server.BasePath, HealthPath), http.HandlerFunc(health))
	mux.Handle(join(cfg.Server.BasePath, OpenAPIPath), doc.Handler())

	return &Server{
		cfg:     cfg,
		logger:  logger,
		handler: logging.Middleware(logger.Named("http"), mux),
		routes:  routes,
		doc:     doc,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Routes() webform.Routes {
	return s.routes
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// within the configured grace period. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger.Named("http")),
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	s.logger.Info("server starting",
		zap.String("addr", ln.Addr().String()),
		zap.String("base_path", s.cfg.Server.BasePath),
		zap.String("mode", s.cfg.Numerology.Mode),
	)
	for _, op := range s.doc.Operations() {
		s.logger.Debug("route",
			zap.String("operation", op.ID),
			zap.String("method", op.Method),
			zap.String("path", join(s.cfg.Server.BasePath, op.Path)),
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownGrace)
		defer cancel()
		s.logger.Info("server stopping", zap.Duration("grace", s.cfg.Server.ShutdownGrace))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

func health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = fmt.Fprintf(w, `{"status":"ok","time":%q}`, time.Now().UTC().Format(time.RFC3339))
}

func join(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return path
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base + path
}
