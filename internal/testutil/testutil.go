// Package testutil provides shared test helpers for setting up content
// directories and databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/folio/internal/db"
	"github.com/starford/folio/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *db.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	d, err := db.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// TestContent creates a temporary content directory holding files.
func TestContent(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	for p, body := range files {
		if err := store.Write(p, []byte(body)); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return dir, store
}

// Site is a minimal valid site.yaml.
const Site = `profile:
  name: Ada Lovelace
  role: Engineer
  bio: Writes programs.
  email: ada@example.com
skills:
  - title: Core
    skills:
      - {name: Go, level: 80}
`

// Projects returns three project files covering every category.
func Projects() map[string]string {
	return map[string]string{
		"site.yaml":         Site,
		"projects/shop.md":  "---\nid: shop\ntitle: Shop\ndescription: Online store\ncategory: fullstack\ntags: [React, Stripe]\nfeatured: true\norder: 1\n---\nDetail.\n",
		"projects/board.md": "---\nid: board\ntitle: Task Board\ndescription: Kanban app\ncategory: frontend\ntags: [React]\norder: 2\n---\n",
		"projects/api.md":   "---\nid: api\ntitle: Blog API\ndescription: REST service\ncategory: backend\ntags: [Go, REST API]\norder: 3\n---\n",
	}
}
