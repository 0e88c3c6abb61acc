package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ZeroExit(t *testing.T) {
	code, err := Run(context.Background(), "/bin/sh", []string{"-c", "exit 0"}, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	code, err := Run(context.Background(), "/bin/sh", []string{"-c", "exit 3"}, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRun_MissingBinary(t *testing.T) {
	code, err := Run(context.Background(), "/nonexistent/binary", nil, RunOptions{})
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestRun_RedirectsStdout(t *testing.T) {
	var out bytes.Buffer
	code, err := Run(context.Background(), "/bin/sh", []string{"-c", "echo hello"},
		RunOptions{Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out.String())
}

func TestRun_RedirectsStdin(t *testing.T) {
	var out bytes.Buffer
	code, err := Run(context.Background(), "/bin/cat", nil,
		RunOptions{Stdin: bytes.NewBufferString("piped"), Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "piped", out.String())
}

func TestRunLogged_AppendsCombinedOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "job.log")
	require.NoError(t, os.WriteFile(logPath, []byte("previous run\n"), 0644))

	code, err := RunLogged(context.Background(), "/bin/sh",
		[]string{"-c", "echo out; echo err 1>&2"}, logPath)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "previous run\n")
	assert.Contains(t, string(content), "out\n")
	assert.Contains(t, string(content), "err\n")
}

func TestRunLogged_UnwritableLogPath(t *testing.T) {
	code, err := RunLogged(context.Background(), "/bin/true", nil, "/nonexistent/dir/job.log")
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestWhich(t *testing.T) {
	path, err := Which("sh")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	_, err = Which("definitely-not-a-real-binary-name")
	assert.Error(t, err)
}

func TestIsExecutableFile(t *testing.T) {
	dir := t.TempDir()

	executable := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(executable, []byte("#!/bin/sh\n"), 0755))
	assert.True(t, IsExecutableFile(executable))

	plain := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0644))
	assert.False(t, IsExecutableFile(plain))

	assert.False(t, IsExecutableFile(filepath.Join(dir, "missing")))
	assert.False(t, IsExecutableFile(dir))
}

func TestConcatenate_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a")
	second := filepath.Join(dir, "b")
	target := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(first, []byte("one\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("two\n"), 0644))

	require.NoError(t, Concatenate([]string{first, second}, target))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(content))
}

func TestConcatenate_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Concatenate([]string{filepath.Join(dir, "missing")}, filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestLogFileName(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{"no extension", "/usr/local/bin/merge_differential", "/var/log/merge_differential.log"},
		{"extension dropped with its dot", "/usr/local/bin/merge_differential.sh", "/var/log/merge_differentiallog"},
		{"relative reference", "fetch_marc_updates.py", "/var/log/fetch_marc_updateslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFileName(tt.reference, "/var/log"))
		})
	}
}
