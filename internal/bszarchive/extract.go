// Package bszarchive extracts the fixed three-member BSZ delivery bundles.
//
// The BSZ (the union catalog provider) delivers a gzipped tar archive holding
// exactly three payload files, identified by name suffix: title and local
// data (a001.raw), superior title and local data (b001.raw), and authority
// ("Norm") data (c001.raw). The member set is a closed enumeration — any
// other member name means the delivery is malformed and processing must stop.
// Extracted members are renamed to the historical date-stamped names the
// downstream import pipeline expects.
package bszarchive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The three roles of a BSZ bundle, in the fixed result order.
const (
	RoleTitle    = "TitelUndLokaldaten"
	RoleSuperior = "ÜbergeordneteTitelUndLokaldaten"
	RoleNorm     = "Normdaten"
)

// roleSuffixes maps the recognized member-name suffixes to their roles, in
// result order.
var roleSuffixes = []struct {
	suffix string
	role   string
}{
	{"a001.raw", RoleTitle},
	{"b001.raw", RoleSuperior},
	{"c001.raw", RoleNorm},
}

// Extractor unpacks BSZ bundles into Dir.
type Extractor struct {
	Dir string

	// Now allows tests to pin the date stamp; nil means time.Now.
	Now func() time.Time
}

// TargetName computes the date-stamped output name for a role:
// <prefix><role>-<DDMMYY>.mrc.
func TargetName(namePrefix, role string, date time.Time) string {
	return namePrefix + role + "-" + date.Format("020106") + ".mrc"
}

// Extract unpacks the gzipped tar archive at archivePath into the extractor's
// directory and renames each member to its date-stamped target name.
//
// The returned paths are always in the fixed order {title, superior, norm},
// independent of the member order inside the archive. A member that matches
// none of the three known suffixes yields a *FormatError and aborts the
// extraction; members already extracted stay on disk.
func (e Extractor) Extract(archivePath, namePrefix string) ([]string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s as gzip: %w", archivePath, err)
	}
	defer gz.Close()

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	date := now()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive %s: %w", archivePath, err)
		}
		if header.Typeflag == tar.TypeDir {
			continue
		}

		role, ok := roleFor(header.Name)
		if !ok {
			return nil, &FormatError{Archive: archivePath, Member: header.Name}
		}

		target := filepath.Join(e.Dir, TargetName(namePrefix, role, date))
		if err := e.extractMember(reader, header.Name, target); err != nil {
			return nil, fmt.Errorf("failed to extract member %s of %s: %w", header.Name, archivePath, err)
		}
	}

	paths := make([]string, 0, len(roleSuffixes))
	for _, rs := range roleSuffixes {
		paths = append(paths, filepath.Join(e.Dir, TargetName(namePrefix, rs.role, date)))
	}
	return paths, nil
}

// roleFor matches a member name against the closed suffix set.
func roleFor(member string) (string, bool) {
	for _, rs := range roleSuffixes {
		if strings.HasSuffix(member, rs.suffix) {
			return rs.role, true
		}
	}
	return "", false
}

// extractMember writes one member to its raw name inside Dir, then renames
// it to target. Pre-existing files at either name are removed first.
func (e Extractor) extractMember(r io.Reader, member, target string) error {
	raw := filepath.Join(e.Dir, filepath.Base(member))
	_ = os.Remove(raw)
	_ = os.Remove(target)

	out, err := os.Create(raw)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Rename(raw, target)
}
