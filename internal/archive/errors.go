package archive

import "errors"

// Sentinel errors returned by Inspect and Extract. Callers classify failures
// with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidArchive means the bytes could not be parsed as a ZIP archive.
	ErrInvalidArchive = errors.New("invalid or corrupted zip file")

	// ErrMemberNotFound means the requested member name is absent from the archive.
	ErrMemberNotFound = errors.New("member not found in archive")

	// ErrNotUTF8 means the member's bytes are not valid UTF-8 text.
	ErrNotUTF8 = errors.New("member is not valid UTF-8 text")
)
