// Package bszarchive extracts the fixed three-member BSZ delivery bundles.
package bszarchive

import "fmt"

// FormatError reports a bundle member that does not belong to the closed
// BSZ format. Extraction aborts immediately; files already extracted are
// left on disk.
type FormatError struct {
	Archive string
	Member  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("archive format error: unknown member %q in archive %q", e.Member, e.Archive)
}
