package archive

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Extract decompresses a single member and decodes it as UTF-8 text. The
// member name is matched exactly, case-sensitive, against entry names.
// Invalid byte sequences fail with ErrNotUTF8; there is no fallback to
// alternate encodings or binary display.
func Extract(path, member string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return "", fmt.Errorf("%w: %v", ErrInvalidArchive, err)
		}
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != member {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening member %q: %w", member, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("reading member %q: %w", member, err)
		}

		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %q", ErrNotUTF8, member)
		}

		return string(data), nil
	}

	return "", fmt.Errorf("%w: %q", ErrMemberNotFound, member)
}

// CheckWellFormed token-scans content and reports whether it parses as XML.
// Advisory only; extraction never depends on the result.
func CheckWellFormed(content string) bool {
	dec := xml.NewDecoder(strings.NewReader(content))
	sawElement := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return err == io.EOF && sawElement
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}
