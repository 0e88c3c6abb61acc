// Package fsutil provides the symlink and file helpers shared by the cronjobs.
package fsutil

import "fmt"

// ClobberError reports a refusal to replace an existing non-symlink file
// with a symlink.
type ClobberError struct {
	LinkName string
}

func (e *ClobberError) Error() string {
	return fmt.Sprintf("refusing to replace existing non-symlink file %q with a symlink", e.LinkName)
}
