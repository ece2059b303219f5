package content

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestLibrary_ReloadPublishesOnlyOnChange(t *testing.T) {
	store := writeFiles(t, map[string]string{
		"site.yaml":     testSite,
		"projects/a.md": "---\ntitle: A\ncategory: frontend\n---\n",
	})
	lib, err := NewLibrary(NewLoader(store, discard()), discard())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	var published atomic.Int32
	cancel := lib.Subscribe(func(*Snapshot) { published.Add(1) })
	defer cancel()

	changed, err := lib.Reload()
	if err != nil || changed {
		t.Fatalf("Reload unchanged = %v, %v", changed, err)
	}
	if published.Load() != 0 {
		t.Fatal("published without change")
	}

	_ = store.Write("projects/b.md", []byte("---\ntitle: B\ncategory: backend\n---\n"))
	changed, err = lib.Reload()
	if err != nil || !changed {
		t.Fatalf("Reload changed = %v, %v", changed, err)
	}
	if published.Load() != 1 || len(lib.Snapshot().Projects) != 2 {
		t.Errorf("published=%d projects=%d", published.Load(), len(lib.Snapshot().Projects))
	}
}

func TestLibrary_FailedReloadKeepsSnapshot(t *testing.T) {
	store := writeFiles(t, map[string]string{
		"site.yaml":     testSite,
		"projects/a.md": "---\ntitle: A\ncategory: frontend\n---\n",
	})
	lib, err := NewLibrary(NewLoader(store, discard()), discard())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	before := lib.Snapshot()

	_ = store.Write("projects/a.md", []byte("---\ntitle: A\ncategory: nope\n---\n"))
	if _, err := lib.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if lib.Snapshot() != before {
		t.Error("snapshot replaced by failed reload")
	}
}

func TestWatch_ReloadsOnFileChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := writeFiles(t, map[string]string{
		"site.yaml":     testSite,
		"projects/a.md": "---\ntitle: A\ncategory: frontend\n---\n",
	})
	lib, err := NewLibrary(NewLoader(store, discard()), discard())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, lib, store.Root(), discard()) }()

	time.Sleep(100 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(store.Root(), "projects", "b.md"),
		[]byte("---\ntitle: B\ncategory: backend\n---\n"), 0o644)

	deadline := time.Now().Add(5 * time.Second)
	for len(lib.Snapshot().Projects) != 2 {
		if time.Now().After(deadline) {
			t.Fatal("watcher did not reload content")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch: %v", err)
	}
}
