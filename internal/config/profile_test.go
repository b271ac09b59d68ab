// profile_test.go - Tests for the YAML inspection profile
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	if !p.Allowed("archive.zip") {
		t.Error("expected .zip to be allowed")
	}
	if !p.Allowed("ARCHIVE.ZIP") {
		t.Error("extension check must be case-insensitive")
	}
	if p.Allowed("archive.tar.gz") {
		t.Error("expected .tar.gz to be rejected")
	}
	if p.Allowed("archive.zip.exe") {
		t.Error("expected trailing non-zip extension to be rejected")
	}
	if !p.CheckWellFormed {
		t.Error("expected CheckWellFormed to default to true")
	}
}

func TestLoadProfile(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := LoadProfile("")
		if err != nil {
			t.Fatalf("LoadProfile failed: %v", err)
		}
		if len(p.MemberSuffixes) != 1 || p.MemberSuffixes[0] != ".xml" {
			t.Errorf("MemberSuffixes = %v", p.MemberSuffixes)
		}
	})

	t.Run("yaml overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		yaml := "allowed_extensions: [zip, ZIPX]\nmember_suffixes: [\".xml\", \".xsd\"]\ncheck_well_formed: false\n"
		if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
			t.Fatal(err)
		}

		p, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("LoadProfile failed: %v", err)
		}

		if !p.Allowed("a.zipx") {
			t.Error("expected normalized .zipx to be allowed")
		}
		if len(p.MemberSuffixes) != 2 {
			t.Errorf("MemberSuffixes = %v", p.MemberSuffixes)
		}
		if p.CheckWellFormed {
			t.Error("expected CheckWellFormed false")
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing profile")
		}
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("allowed_extensions: [unterminated"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadProfile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}
