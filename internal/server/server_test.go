package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-numerology/internal/config"
	"github.com/goliatone/go-numerology/internal/logging"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownGrace = 2 * time.Second
	return cfg
}

func newServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	srv, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(logging.RequestIDHeader))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, HealthPath, nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestOpenAPIServed(t *testing.T) {
	srv := newServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, OpenAPIPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Contains(t, doc, "paths")
}

func TestBasePathPrefixesEveryRoute(t *testing.T) {
	cfg := testConfig()
	cfg.Server.BasePath = "/numbers"
	srv := newServer(t, cfg)

	require.Equal(t, "/numbers/result", srv.Routes().Result)

	for _, path := range []string{"/numbers/", "/numbers" + HealthPath, "/numbers" + OpenAPIPath} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestResultUsesConfiguredMode(t *testing.T) {
	cfg := testConfig()
	cfg.Numerology.Mode = "yearly"
	srv := newServer(t, cfg)

	form := url.Values{"name": {"Asha"}, "birthdate": {"1990-05-15"}, "format": {"json"}}
	req := httptest.NewRequest(http.MethodPost, "/result", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "yearly", body["mode"])
	require.NotEmpty(t, body["yearly_periods"])
}

func TestServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := newServer(t, testConfig())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + HealthPath)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServeReportsBadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Addr = "not-an-address"
	srv, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	err = srv.ListenAndServe(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen")
}
