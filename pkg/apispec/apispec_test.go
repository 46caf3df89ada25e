package apispec

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustLoad(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestLoadValidatesEmbeddedDocument(t *testing.T) {
	doc := mustLoad(t)
	if doc.Title() != "Numerology" {
		t.Fatalf("unexpected title %q", doc.Title())
	}
	if doc.Spec().Paths.Find("/update-grid") == nil {
		t.Fatalf("expected /update-grid to be documented")
	}
}

func TestOperationsSorted(t *testing.T) {
	var got []string
	for _, op := range mustLoad(t).Operations() {
		got = append(got, op.Method+" "+op.Path+" "+op.ID)
	}
	want := []string{
		"GET / renderForm",
		"GET /healthz health",
		"GET /openapi.json openapi",
		"POST /result computeResults",
		"POST /update-grid updateGrid",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDataRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":    "",
		"garbage":  "{not yaml",
		"no paths": "openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadData(context.Background(), []byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHandlerServesJSON(t *testing.T) {
	h := mustLoad(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", payload["openapi"])
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openapi.json", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestRawReturnsCopy(t *testing.T) {
	raw := Raw()
	raw[0] = 'X'
	if Raw()[0] == 'X' {
		t.Fatalf("expected Raw to return a copy")
	}
}
