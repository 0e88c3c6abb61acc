// Package process runs external executables synchronously and provides the
// small set of file/exec helpers the cronjobs share.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RunOptions controls stream redirection for a run. Nil fields inherit the
// parent's streams.
type RunOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// Run executes path with args and blocks until the child exits.
//
// The child's exit code is returned as data; a non-nil error means the
// process could not be run at all (missing binary, permission problem).
// Interpreting a non-zero exit code is the caller's responsibility.
func Run(ctx context.Context, path string, args []string, opts RunOptions) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run %s: %w", path, err)
}

// RunLogged executes path with args, appending the child's combined stdout
// and stderr to the file at logPath.
func RunLogged(ctx context.Context, path string, args []string, logPath string) (int, error) {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return -1, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	defer logFile.Close()

	return Run(ctx, path, args, RunOptions{Stdout: logFile, Stderr: logFile})
}

// Which locates an executable on PATH, or verifies an explicit path.
func Which(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("executable %q not found: %w", name, err)
	}
	return path, nil
}

// IsExecutableFile reports whether path is a regular file with an execute bit.
func IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// Concatenate copies the contents of paths, in order, into target.
// The target is truncated first.
func Concatenate(paths []string, target string) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	for _, path := range paths {
		in, err := os.Open(path)
		if err != nil {
			out.Close()
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		_, copyErr := io.Copy(out, in)
		in.Close()
		if copyErr != nil {
			out.Close()
			return fmt.Errorf("failed to append %s to %s: %w", path, target, copyErr)
		}
	}

	return out.Close()
}

// LogFileName derives a log file path for referenceFile under logDir.
//
// The two branches intentionally name their results differently: without an
// extension the result is "<base>.log", with an extension the dot is dropped
// and the result is "<base-without-extension>log". This mirrors the behavior
// of the scripts this tooling replaced; downstream automation matches on the
// historical names.
func LogFileName(referenceFile, logDir string) string {
	base := filepath.Base(referenceFile)
	ext := filepath.Ext(base)
	if ext == "" {
		return filepath.Join(logDir, base+".log")
	}
	return filepath.Join(logDir, strings.TrimSuffix(base, ext)+"log")
}
