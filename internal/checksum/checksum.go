// Package checksum fingerprints content files and content sets.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/starford/folio/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Manifest fingerprints a file set from each file's path and checksum. It
// changes when a file is added, removed, renamed or edited. files must be
// in a stable order.
func Manifest(files []models.FileMetadata) string {
	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write([]byte(f.Checksum))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
