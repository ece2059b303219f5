package storage

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
)

// Embedded is a read-only Provider over an fs.FS, used for the content
// compiled into the binary.
type Embedded struct {
	fsys fs.FS
	root string
}

// NewEmbedded returns a Provider serving files under root in fsys.
func NewEmbedded(fsys fs.FS, root string) (*Embedded, error) {
	sub, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("storage: embedded root %s: %w", root, err)
	}
	return &Embedded{fsys: sub, root: root}, nil
}

// List returns metadata for every content file under dir.
func (e *Embedded) List(dir string) ([]models.FileMetadata, error) {
	if dir == "" {
		dir = "."
	}
	var out []models.FileMetadata
	err := fs.WalkDir(e.fsys, path.Clean(dir), func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") || !IsContentFile(d.Name()) {
			return nil
		}
		data, err := fs.ReadFile(e.fsys, p)
		if err != nil {
			return err
		}
		out = append(out, models.FileMetadata{Path: p, Checksum: checksum.Sum(data), UpdatedAt: time.Time{}})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list embedded: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read returns the raw bytes of an embedded file.
func (e *Embedded) Read(p string) ([]byte, error) {
	data, err := fs.ReadFile(e.fsys, path.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("storage: read embedded %s: %w", p, err)
	}
	return data, nil
}

// CopyTo writes every embedded content file into dst. Existing files are
// kept unless overwrite is set. It returns the paths written.
func CopyTo(src Provider, dst Writer, overwrite bool) ([]string, error) {
	metas, err := src.List("")
	if err != nil {
		return nil, err
	}
	var written []string
	for _, m := range metas {
		if !overwrite {
			if _, err := dst.Read(m.Path); err == nil {
				continue
			}
		}
		data, err := src.Read(m.Path)
		if err != nil {
			return written, err
		}
		if err := dst.Write(m.Path, data); err != nil {
			return written, err
		}
		written = append(written, m.Path)
	}
	return written, nil
}
