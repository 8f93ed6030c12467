package static

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned for any static path that does not name a regular
// file inside the static root.
var ErrNotFound = errors.New("static asset not found")

const (
	urlPrefix          = "/static/"
	defaultContentType = "application/octet-stream"
)

var contentTypes = map[string]string{
	".css": "text/css",
	".png": "image/png",
}

// Asset is a resolved static file.
type Asset struct {
	Path        string
	ContentType string
	Size        int64
}

// Resolver maps /static/... URL paths to files under a base directory.
type Resolver struct {
	baseDir string
	root    string
}

// NewResolver returns a resolver for files under baseDir/static.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{
		baseDir: baseDir,
		root:    filepath.Join(baseDir, "static"),
	}
}

// Resolve locates the file for urlPath.
func (s *Resolver) Resolve(urlPath string) (Asset, error) {
	if !strings.HasPrefix(urlPath, urlPrefix) {
		return Asset{}, ErrNotFound
	}

	rel := strings.TrimPrefix(urlPath, "/")
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return Asset{}, ErrNotFound
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return Asset{}, ErrNotFound
	}

	return Asset{Path: full, ContentType: ContentType(full), Size: info.Size()}, nil
}

// ContentType picks the response type from the file extension.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}
