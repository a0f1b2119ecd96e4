package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}

	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding spec: %v", err)
	}
	if doc.OpenAPI == "" {
		t.Error("missing openapi version")
	}
	for _, path := range []string{
		"/healthz",
		"/api/sessions",
		"/api/sessions/{id}/answer",
		"/api/sessions/{id}/players/{playerID}",
		"/api/sessions/{id}/events",
	} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("spec missing %s", path)
		}
	}
}

func TestSwaggerUI(t *testing.T) {
	api := newTestAPI(t, testRules(), "")

	w := api.do(t, http.MethodGet, "/docs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Type"); !strings.Contains(got, "text/html") {
		t.Fatalf("content-type = %q, want text/html", got)
	}
	if !strings.Contains(w.Body.String(), "/openapi.json") {
		t.Error("docs page does not point at /openapi.json")
	}
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>geo</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	api := newTestAPI(t, testRules(), dir)

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/app.js", http.StatusOK, "console.log(1)"},
		{"/play/123", http.StatusOK, "<html>geo</html>"},
		{"/api/unknown", http.StatusNotFound, `"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := api.do(t, http.MethodGet, tt.path, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
