// Package archive inspects ZIP files and extracts individual members as text.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"strings"
)

// TimestampFormat renders per-member modification times for display.
const TimestampFormat = "2006-01-02 15:04:05"

// TimestampUnknown is substituted when an entry carries no usable metadata.
const TimestampUnknown = "Unknown"

// Listing describes the contents of a ZIP archive. It is produced from the
// central directory alone; no entry bodies are decompressed.
type Listing struct {
	// Members holds every entry name in central directory order.
	Members []string
	// XMLMembers is the subset of file entries matching the XML suffixes,
	// in the same order.
	XMLMembers []string
	// Timestamps maps each XML member to its formatted modification time.
	Timestamps map[string]string
}

// HasXMLMember reports whether name exactly matches one of the listed XML
// members. The match is case-sensitive.
func (l *Listing) HasXMLMember(name string) bool {
	for _, m := range l.XMLMembers {
		if m == name {
			return true
		}
	}
	return false
}

// Inspect reads the archive's central directory and returns its listing.
// suffixes are matched case-insensitively against member names; nil means
// the default ".xml". A file that cannot be parsed as a ZIP yields an error
// wrapping ErrInvalidArchive and never a partial listing.
func Inspect(path string, suffixes []string) (*Listing, error) {
	if len(suffixes) == 0 {
		suffixes = []string{".xml"}
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
		}
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	listing := &Listing{
		Members:    make([]string, 0, len(zr.File)),
		XMLMembers: []string{},
		Timestamps: make(map[string]string),
	}

	for _, f := range zr.File {
		listing.Members = append(listing.Members, f.Name)

		if f.FileInfo().IsDir() || !hasAnySuffix(f.Name, suffixes) {
			continue
		}

		listing.XMLMembers = append(listing.XMLMembers, f.Name)
		if f.Modified.IsZero() {
			listing.Timestamps[f.Name] = TimestampUnknown
		} else {
			listing.Timestamps[f.Name] = f.Modified.Format(TimestampFormat)
		}
	}

	return listing, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
