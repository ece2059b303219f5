// Package storage provides read access to the site content directory.
package storage

import (
	"path"
	"strings"

	"github.com/starford/folio/internal/models"
)

// Provider is the interface for content file access.
type Provider interface {
	// List returns metadata for every content file under dir (relative to the root).
	List(dir string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
}

// Writer is a Provider that can also write files.
type Writer interface {
	Provider
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
}

// IsContentFile reports whether name is a file the content loader reads.
func IsContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".yaml", ".yml":
		return true
	}
	return false
}
