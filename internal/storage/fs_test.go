package storage

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func tempContent(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempContent(t)
	content := []byte("---\nid: blog-api\n---\nBody\n")
	if err := s.Write("projects/blog-api.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("projects/blog-api.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestList_OnlyContentFilesSorted(t *testing.T) {
	s := tempContent(t)
	_ = s.Write("site.yaml", []byte("profile: {}"))
	_ = s.Write("projects/b.md", []byte("b"))
	_ = s.Write("projects/a.md", []byte("a"))
	_ = s.Write("notes.txt", []byte("ignored"))
	_ = s.Write(".hidden.md", []byte("ignored"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"projects/a.md", "projects/b.md", "site.yaml"}
	if len(items) != len(want) {
		t.Fatalf("items = %+v, want %v", items, want)
	}
	for i, p := range want {
		if items[i].Path != p {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Path, p)
		}
		if items[i].Checksum == "" {
			t.Errorf("items[%d] has no checksum", i)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempContent(t)

	for _, p := range []string{"../../etc/passwd", "../outside.md", "/etc/shadow"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempContent(t)
	_ = s.Write("site.yaml", []byte("a: 1"))
	if err := s.Write("site.yaml", []byte("a: 2")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("site.yaml")
	if string(got) != "a: 2" {
		t.Errorf("expected updated content, got %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(s.Root(), ".folio-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_Errors(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for non-existent dir")
	}
	f, _ := os.CreateTemp("", "folio-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestEmbedded_ListReadAndCopy(t *testing.T) {
	mem := fstest.MapFS{
		"defaults/site.yaml":          {Data: []byte("profile:\n  name: Ada\n")},
		"defaults/projects/one.md":    {Data: []byte("---\nid: one\n---\n")},
		"defaults/projects/README":    {Data: []byte("skip")},
		"defaults/projects/.draft.md": {Data: []byte("skip")},
	}
	src, err := NewEmbedded(mem, "defaults")
	if err != nil {
		t.Fatalf("NewEmbedded: %v", err)
	}
	items, err := src.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].Path != "projects/one.md" || items[1].Path != "site.yaml" {
		t.Fatalf("items = %+v", items)
	}

	dst := tempContent(t)
	_ = dst.Write("site.yaml", []byte("keep me"))
	written, err := CopyTo(src, dst, false)
	if err != nil {
		t.Fatalf("CopyTo: %v", err)
	}
	if len(written) != 1 || written[0] != "projects/one.md" {
		t.Errorf("written = %v", written)
	}
	kept, _ := dst.Read("site.yaml")
	if string(kept) != "keep me" {
		t.Errorf("existing file overwritten: %q", kept)
	}

	if _, err := CopyTo(src, dst, true); err != nil {
		t.Fatalf("CopyTo overwrite: %v", err)
	}
	replaced, _ := dst.Read("site.yaml")
	if string(replaced) != "profile:\n  name: Ada\n" {
		t.Errorf("overwrite did not replace: %q", replaced)
	}
}

func TestIsContentFile(t *testing.T) {
	for name, want := range map[string]bool{"a.md": true, "b.YAML": true, "c.yml": true, "d.json": false, "e": false} {
		if IsContentFile(name) != want {
			t.Errorf("IsContentFile(%q) = %v", name, !want)
		}
	}
}
