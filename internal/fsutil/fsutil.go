// Package fsutil provides the symlink and file helpers shared by the cronjobs.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SafeSymlink creates a symlink at linkName pointing to source.
//
// source must exist. An existing symlink at linkName is replaced; an existing
// non-symlink file is never touched and yields a *ClobberError. Repeating the
// call with the same arguments succeeds.
func SafeSymlink(source, linkName string) error {
	if _, err := os.Lstat(source); err != nil {
		return fmt.Errorf("symlink source %s does not exist: %w", source, err)
	}

	if info, err := os.Lstat(linkName); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return &ClobberError{LinkName: linkName}
		}
		if err := os.Remove(linkName); err != nil {
			return fmt.Errorf("failed to remove old symlink %s: %w", linkName, err)
		}
	}

	if err := os.Symlink(source, linkName); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s: %w", linkName, source, err)
	}
	return nil
}

// ResolveSymlink returns the absolute target of the symlink at linkName.
// An absolute stored target is returned verbatim; a relative one is joined
// against the link's own directory (the working directory if there is none).
func ResolveSymlink(linkName string) (string, error) {
	target, err := os.Readlink(linkName)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", linkName, err)
	}
	if filepath.IsAbs(target) {
		return target, nil
	}

	dir := filepath.Dir(linkName)
	if dir == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = cwd
	}
	return filepath.Join(dir, target), nil
}

// Remove unlinks path, reporting whether the unlink succeeded.
func Remove(path string) bool {
	return os.Remove(path) == nil
}

// MostRecentMatch returns the path matching pattern with the newest
// modification time, or "" when nothing matches.
func MostRecentMatch(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}

	var newest string
	var newestMtime int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMtime {
			newest = match
			newestMtime = info.ModTime().UnixNano()
		}
	}
	return newest, nil
}
