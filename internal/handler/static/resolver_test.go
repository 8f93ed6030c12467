package static

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func setupBase(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "static", "img"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"static/app.css":      "body{}",
		"static/img/logo.png": "\x89PNG",
		"static/app.js":       "void 0",
		"secret.txt":          "top secret",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(base, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return base
}

func TestResolveContentTypes(t *testing.T) {
	r := NewResolver(setupBase(t))

	testCases := []struct {
		path string
		want string
	}{
		{"/static/app.css", "text/css"},
		{"/static/img/logo.png", "image/png"},
		{"/static/app.js", "application/octet-stream"},
	}
	for _, tc := range testCases {
		asset, err := r.Resolve(tc.path)
		if err != nil {
			t.Fatalf("Resolve(%s) err: %v", tc.path, err)
		}
		if asset.ContentType != tc.want {
			t.Fatalf("Resolve(%s) content type %q, want %q", tc.path, asset.ContentType, tc.want)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver(setupBase(t))

	for _, p := range []string{
		"/static/missing.css",
		"/static/img",
		"/static/../secret.txt",
		"/static/img/../../secret.txt",
		"/secret.txt",
	} {
		if _, err := r.Resolve(p); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Resolve(%s): expected ErrNotFound, got %v", p, err)
		}
	}
}

func TestHandlerStreamsFile(t *testing.T) {
	notFoundCalled := false
	h := New(NewResolver(setupBase(t)), func(w http.ResponseWriter, r *http.Request) {
		notFoundCalled = true
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/css" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if resp.Body.String() != "body{}" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/static/missing.css", nil)
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if !notFoundCalled || resp.Code != http.StatusNotFound {
		t.Fatalf("expected not-found delegation, got %d", resp.Code)
	}
}
