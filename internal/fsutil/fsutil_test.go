package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeSymlink_CreatesLink(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(source, []byte("x"), 0644))

	require.NoError(t, SafeSymlink(source, link))

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestSafeSymlink_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(source, []byte("x"), 0644))

	require.NoError(t, SafeSymlink(source, link))
	require.NoError(t, SafeSymlink(source, link))

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestSafeSymlink_ReplacesExistingSymlink(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("2"), 0644))

	require.NoError(t, SafeSymlink(first, link))
	require.NoError(t, SafeSymlink(second, link))

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, second, target)
}

func TestSafeSymlink_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := SafeSymlink(filepath.Join(dir, "missing"), filepath.Join(dir, "link"))
	assert.Error(t, err)
}

func TestSafeSymlink_RefusesToClobberRegularFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	regular := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(source, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(regular, []byte("precious"), 0644))

	err := SafeSymlink(source, regular)
	require.Error(t, err)

	var clobberErr *ClobberError
	assert.ErrorAs(t, err, &clobberErr)

	// The regular file must be left untouched.
	content, readErr := os.ReadFile(regular)
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(content))
}

func TestResolveSymlink_AbsoluteTarget(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink("/abs/path", link))

	resolved, err := ResolveSymlink(link)
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", resolved)
}

func TestResolveSymlink_RelativeTargetJoinsLinkDir(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink("rel/file", link))

	resolved, err := ResolveSymlink(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rel", "file"), resolved)
}

func TestResolveSymlink_BareLinkNameJoinsCwd(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	require.NoError(t, os.Symlink("rel/file", "link"))

	resolved, err := ResolveSymlink("link")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
	assert.Equal(t, "file", filepath.Base(resolved))
}

func TestResolveSymlink_NotASymlink(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(regular, []byte("x"), 0644))

	_, err := ResolveSymlink(regular)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, Remove(path))
	assert.False(t, Remove(path))
}

func TestMostRecentMatch(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "dump-01.gz")
	newer := filepath.Join(dir, "dump-02.gz")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	match, err := MostRecentMatch(filepath.Join(dir, "dump-*.gz"))
	require.NoError(t, err)
	assert.Equal(t, newer, match)
}

func TestMostRecentMatch_NoMatches(t *testing.T) {
	match, err := MostRecentMatch(filepath.Join(t.TempDir(), "nothing-*"))
	require.NoError(t, err)
	assert.Equal(t, "", match)
}
