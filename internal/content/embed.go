package content

import (
	"embed"

	"github.com/starford/folio/internal/storage"
)

//go:embed all:defaults
var defaultsFS embed.FS

// Defaults returns the sample content compiled into the binary.
func Defaults() (*storage.Embedded, error) {
	return storage.NewEmbedded(defaultsFS, "defaults")
}
