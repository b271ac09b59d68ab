// Package scratch manages per-request temporary workspaces on the local
// filesystem. Each request gets its own uuid-named directory so concurrent
// uploads never collide, and releases it when handling finishes.
package scratch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manager allocates workspace directories under a common root.
type Manager struct {
	root string
}

// NewManager creates the workspace root if needed. An empty root defaults to
// a subdirectory of the system temp directory.
func NewManager(root string) (*Manager, error) {
	if root == "" {
		root = filepath.Join(os.TempDir(), "xmlvalidator")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating scratch root: %w", err)
	}
	return &Manager{root: root}, nil
}

// Root returns the workspace root directory.
func (m *Manager) Root() string {
	return m.root
}

// Workspace is a single request's private temporary directory.
type Workspace struct {
	dir string
}

// Acquire creates a fresh workspace directory.
func (m *Manager) Acquire() (*Workspace, error) {
	dir := filepath.Join(m.root, uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// SaveUpload streams an upload into the workspace under the file's base name
// and returns the saved path and size. A partial write is removed.
func (w *Workspace) SaveUpload(name string, r io.Reader) (string, int64, error) {
	path := filepath.Join(w.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating upload file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("writing upload: %w", err)
	}

	return path, size, nil
}

// Release removes the workspace and everything in it. Safe to call more
// than once.
func (w *Workspace) Release() error {
	return os.RemoveAll(w.dir)
}

// SweepStale removes workspaces older than maxAge and returns how many were
// removed. Workspaces are normally released by the request that acquired
// them; the sweep catches directories orphaned by a crashed process.
func (m *Manager) SweepStale(maxAge time.Duration) int {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if os.RemoveAll(filepath.Join(m.root, e.Name())) == nil {
			removed++
		}
	}

	return removed
}
