package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile controls what the inspector accepts and lists. It is loaded from
// an optional YAML file; absent fields keep their defaults.
type Profile struct {
	// AllowedExtensions are upload filename extensions accepted by the
	// handler, lowercase with leading dot.
	AllowedExtensions []string `yaml:"allowed_extensions"`
	// MemberSuffixes select which archive members appear in the XML subset.
	MemberSuffixes []string `yaml:"member_suffixes"`
	// CheckWellFormed enables the advisory well-formedness scan of
	// extracted content.
	CheckWellFormed bool `yaml:"check_well_formed"`
}

// DefaultProfile returns the built-in inspection profile.
func DefaultProfile() *Profile {
	return &Profile{
		AllowedExtensions: []string{".zip"},
		MemberSuffixes:    []string{".xml"},
		CheckWellFormed:   true,
	}
}

// LoadProfile reads a YAML profile file over the defaults. An empty path
// returns the defaults unchanged.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile.normalize()
	return profile, nil
}

// Allowed reports whether filename has one of the accepted upload extensions.
func (p *Profile) Allowed(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range p.AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (p *Profile) normalize() {
	for i, ext := range p.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.AllowedExtensions[i] = ext
	}
	if len(p.AllowedExtensions) == 0 {
		p.AllowedExtensions = []string{".zip"}
	}
	if len(p.MemberSuffixes) == 0 {
		p.MemberSuffixes = []string{".xml"}
	}
}
