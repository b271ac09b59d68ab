// zipbuilder.go - Test helpers for building ZIP archives in memory
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ZipEntry describes one member to place in a built archive.
type ZipEntry struct {
	Name     string
	Content  []byte
	Modified time.Time
}

// BuildZipBytes returns a ZIP archive containing entries, in order.
func BuildZipBytes(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		}
		if !e.Modified.IsZero() {
			hdr.Modified = e.Modified
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("creating zip entry %q: %v", e.Name, err)
		}
		if _, err := w.Write(e.Content); err != nil {
			t.Fatalf("writing zip entry %q: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	return buf.Bytes()
}

// BuildZip writes the archive to a file in a test temp directory and returns
// its path.
func BuildZip(t *testing.T, entries ...ZipEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.zip")
	if err := os.WriteFile(path, BuildZipBytes(t, entries...), 0644); err != nil {
		t.Fatalf("writing zip file: %v", err)
	}

	return path
}
