// Package timestamp persists the "last successful run" marker each cronjob
// uses to gate incremental work.
//
// The on-disk format is the historical one: a single 8-byte native-endian
// IEEE-754 double holding seconds since the UNIX epoch, no header, no
// versioning. A missing file reads as 0, i.e. the epoch, so a first run
// processes everything. There is no locking; the external scheduler is
// assumed to run at most one instance of a script at a time, and concurrent
// writers simply race (last writer wins).
package timestamp

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extension is appended to the prefix to form the timestamp file name.
const Extension = ".timestamp"

// Store reads and writes per-script timestamp files inside Dir.
type Store struct {
	Dir string
}

// DefaultPrefix derives the conventional timestamp prefix for a script:
// its base name with the extension stripped.
func DefaultPrefix(scriptPath string) string {
	base := filepath.Base(scriptPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s Store) path(prefix string) string {
	return filepath.Join(s.Dir, prefix+Extension)
}

// Read returns the stored timestamp for prefix, or exactly 0 when no
// timestamp file exists.
func (s Store) Read(prefix string) (float64, error) {
	data, err := os.ReadFile(s.path(prefix))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read timestamp file %s: %w", s.path(prefix), err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("timestamp file %s has %d bytes, want 8", s.path(prefix), len(data))
	}
	return math.Float64frombits(binary.NativeEndian.Uint64(data)), nil
}

// Write replaces the timestamp file for prefix with ts. The replacement is
// delete-then-write, not atomic.
func (s Store) Write(prefix string, ts float64) error {
	path := s.path(prefix)
	_ = os.Remove(path)

	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], math.Float64bits(ts))
	if err := os.WriteFile(path, buf[:], 0644); err != nil {
		return fmt.Errorf("failed to write timestamp file %s: %w", path, err)
	}
	return nil
}

// WriteNow writes the current time for prefix and returns the value written.
func (s Store) WriteNow(prefix string) (float64, error) {
	ts := float64(time.Now().UnixNano()) / float64(time.Second)
	if err := s.Write(prefix, ts); err != nil {
		return 0, err
	}
	return ts, nil
}
