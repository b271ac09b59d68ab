// manager_test.go - Tests for scratch workspaces
package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	t.Run("creates root directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "scratch")

		mgr, err := NewManager(root)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}

		if _, err := os.Stat(mgr.Root()); err != nil {
			t.Errorf("expected root directory to exist: %v", err)
		}
	})

	t.Run("empty root falls back to system temp", func(t *testing.T) {
		mgr, err := NewManager("")
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		if !strings.HasPrefix(mgr.Root(), os.TempDir()) {
			t.Errorf("root %q not under system temp", mgr.Root())
		}
	})
}

func TestManager_Acquire(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	t.Run("workspaces do not collide", func(t *testing.T) {
		a, err := mgr.Acquire()
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer a.Release()

		b, err := mgr.Acquire()
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer b.Release()

		if a.Dir() == b.Dir() {
			t.Errorf("two workspaces share a directory: %s", a.Dir())
		}
	})
}

func TestWorkspace_SaveUpload(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	t.Run("saves content under base name", func(t *testing.T) {
		ws, err := mgr.Acquire()
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer ws.Release()

		path, size, err := ws.SaveUpload("archive.zip", strings.NewReader("payload"))
		if err != nil {
			t.Fatalf("SaveUpload failed: %v", err)
		}
		if size != 7 {
			t.Errorf("size = %d, want 7", size)
		}
		if filepath.Base(path) != "archive.zip" {
			t.Errorf("path = %q, want base archive.zip", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading saved file: %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("content = %q, want %q", data, "payload")
		}
	})

	t.Run("strips directory components from name", func(t *testing.T) {
		ws, err := mgr.Acquire()
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer ws.Release()

		path, _, err := ws.SaveUpload("../../evil.zip", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("SaveUpload failed: %v", err)
		}
		if filepath.Dir(path) != ws.Dir() {
			t.Errorf("file escaped workspace: %q", path)
		}
	})
}

func TestWorkspace_Release(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ws, err := mgr.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, _, err := ws.SaveUpload("f.zip", strings.NewReader("data")); err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}

	if err := ws.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after release")
	}

	// Second release is a no-op
	if err := ws.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
}

func TestManager_SweepStale(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	stale, err := mgr.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	fresh, err := mgr.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer fresh.Release()

	// Age the stale workspace past the cutoff
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale.Dir(), old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	removed := mgr.SweepStale(time.Hour)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(stale.Dir()); !os.IsNotExist(err) {
		t.Errorf("stale workspace survived the sweep")
	}
	if _, err := os.Stat(fresh.Dir()); err != nil {
		t.Errorf("fresh workspace was swept: %v", err)
	}
}
