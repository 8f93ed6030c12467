package render

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": {Data: []byte(`<h1>Board</h1>`)},
		"error.html": {Data: []byte(`<p>Error {{.code}}</p>`)},
		"read.html":  {Data: []byte(`{{range .entries}}<li>{{.Username}}: {{.Message}}</li>{{end}}`)},
		"notes.txt":  {Data: []byte(`{{ not parsed`)},
	}
}

func TestRenderSubstitutesContext(t *testing.T) {
	r, err := New(testFS())
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	out, err := r.Render("error.html", map[string]any{"code": 404})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if string(out) != "<p>Error 404</p>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	r, err := New(testFS())
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	entries := []struct{ Username, Message string }{{"eve", "<script>x</script>"}}
	out, err := r.Render("read.html", map[string]any{"entries": entries})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
}

func TestRenderNilContext(t *testing.T) {
	r, err := New(testFS())
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	if _, err := r.Render("index.html", nil); err != nil {
		t.Fatalf("Render err: %v", err)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	r, err := New(testFS())
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	if _, err := r.Render("nope.html", nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if r.has("notes.txt") {
		t.Fatal("non-html files should not be loaded")
	}
}

func TestRenderMissingKeyFails(t *testing.T) {
	r, err := New(testFS())
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	_, err = r.Render("error.html", map[string]any{})
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if renderErr.Name != "error.html" {
		t.Fatalf("unexpected template name %q", renderErr.Name)
	}
}

func TestNewRejectsBrokenTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.html": {Data: []byte(`{{ if }}`)},
	}
	if _, err := New(fsys); err == nil {
		t.Fatal("expected parse error")
	}
}
