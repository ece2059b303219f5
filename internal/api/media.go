package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MediaDir is the content subdirectory holding images and the resume.
const MediaDir = "media"

var mediaExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true, ".pdf": true,
}

// MediaHandler serves files from the media directory of a content root so
// content can reference them as /media/<name>.
type MediaHandler struct {
	contentRoot string
}

// NewMediaHandler creates a handler rooted at the content directory.
func NewMediaHandler(contentRoot string) *MediaHandler {
	return &MediaHandler{contentRoot: contentRoot}
}

func (h *MediaHandler) mediaPath() string {
	return filepath.Join(h.contentRoot, MediaDir)
}

// safeName validates that name is a plain file name with a media extension
// and returns its absolute path under the media directory.
func (h *MediaHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	if !mediaExts[strings.ToLower(filepath.Ext(cleaned))] {
		return "", fmt.Errorf("unsupported media type: %s", name)
	}
	abs := filepath.Join(h.mediaPath(), cleaned)
	if !strings.HasPrefix(abs, h.mediaPath()+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes media directory")
	}
	return abs, nil
}

// ServeFile handles GET /media/{filename}.
func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	abs, err := h.safeName(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, statErr := os.Stat(abs)
	if statErr != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, abs)
}
