// Package solrstats wraps the external Solr statistics collection binary.
//
// The binary gathers per-deployment usage statistics and writes them to a CSV
// file while updating the statistics MySQL database as a side effect. This
// package only drives it: validate the system type, reset the output file,
// run the binary with its output appended to the job log, and report the
// outcome by email.
package solrstats

import (
	"context"
	"fmt"
	"slices"

	"github.com/ubtue/cronjobs/internal/driver"
	"github.com/ubtue/cronjobs/internal/fsutil"
	"github.com/ubtue/cronjobs/internal/notify"
	"github.com/ubtue/cronjobs/internal/process"
)

// Defaults for the paths the job touches; each can be overridden per
// invocation via CLI flags.
const (
	DefaultBinaryPath = "/usr/local/bin/collect_solr_stats_data"
	DefaultOutputFile = "/tmp/collect_solr_stats_data.csv"
	DefaultLogFile    = "/usr/local/var/log/tuefind/collect_solr_stats_data.log"
)

// SystemTypes enumerates the deployments statistics can be collected for.
var SystemTypes = []string{"krimdok", "relbib", "ixtheo"}

// ValidateSystemType checks systemType against the closed deployment set.
func ValidateSystemType(systemType string) error {
	if slices.Contains(SystemTypes, systemType) {
		return nil
	}
	return &driver.UsageError{
		Message: fmt.Sprintf("system type %q must be one of {krimdok,relbib,ixtheo}", systemType),
	}
}

// Runner runs an external binary with combined output appended to a log
// file. Satisfied by process.RunLogged; tests substitute a fake.
type Runner interface {
	RunLogged(ctx context.Context, path string, args []string, logPath string) (int, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// RunLogged implements Runner.
func (ExecRunner) RunLogged(ctx context.Context, path string, args []string, logPath string) (int, error) {
	return process.RunLogged(ctx, path, args, logPath)
}

// Job is one statistics-collection invocation.
type Job struct {
	SystemType string
	Recipient  string

	BinaryPath string // empty = DefaultBinaryPath
	OutputFile string // empty = DefaultOutputFile
	LogFile    string // empty = DefaultLogFile

	Runner   Runner
	Notifier notify.Notifier
}

func (j *Job) binaryPath() string {
	if j.BinaryPath != "" {
		return j.BinaryPath
	}
	return DefaultBinaryPath
}

func (j *Job) outputFile() string {
	if j.OutputFile != "" {
		return j.OutputFile
	}
	return DefaultOutputFile
}

func (j *Job) logFile() string {
	if j.LogFile != "" {
		return j.LogFile
	}
	return DefaultLogFile
}

// Run executes the collection once. On success exactly one success email is
// sent to the configured recipient; every failure is returned to the driver,
// which owns failure reporting.
func (j *Job) Run(ctx context.Context) error {
	if err := ValidateSystemType(j.SystemType); err != nil {
		return err
	}

	// A stale output file from an earlier run must not survive a failed
	// collection and masquerade as fresh data.
	fsutil.Remove(j.outputFile())

	code, err := j.Runner.RunLogged(ctx, j.binaryPath(), []string{j.SystemType, j.outputFile()}, j.logFile())
	if err != nil {
		return fmt.Errorf("failed to run the statistics collector: %w", err)
	}
	if code != 0 {
		return &driver.ExternalProcessError{Binary: j.binaryPath(), ExitCode: code}
	}

	msg := notify.Message{
		Subject:   "Solr Stats Collector",
		Body:      "Successfully generated Solr statistics and updated the statistics MySQL database.\n",
		Recipient: j.Recipient,
		Priority:  notify.PriorityNormal,
	}
	if err := j.Notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("statistics were collected but the success notification failed: %w", err)
	}
	return nil
}
