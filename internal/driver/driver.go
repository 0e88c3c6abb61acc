// Package driver implements the shared job-execution and notification
// contract for the cronjob family.
//
// Every cronjob follows the same convention: run the job body once,
// synchronously; on success let the body send its own success report; on any
// error or panic send exactly one high-priority failure email (with the stack
// trace for panics) and exit nonzero. A notifier failure degrades to stderr
// diagnostics — the failure path never tries to notify about its own failure.
// Process termination belongs to main alone; Run returns an exit code.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/ubtue/cronjobs/internal/notify"
)

// Driver runs one job invocation and reports its outcome.
type Driver struct {
	// Name identifies the job in subjects and diagnostics, conventionally
	// the binary's base name.
	Name string

	// RunID correlates log output with the notification for one invocation.
	RunID string

	Notifier notify.Notifier

	// Err receives diagnostics; defaults to os.Stderr.
	Err io.Writer
}

// New creates a Driver with a fresh run ID.
func New(name string, notifier notify.Notifier) *Driver {
	return &Driver{
		Name:     name,
		RunID:    uuid.NewString(),
		Notifier: notifier,
		Err:      os.Stderr,
	}
}

func (d *Driver) errWriter() io.Writer {
	if d.Err != nil {
		return d.Err
	}
	return os.Stderr
}

// Run executes job under the failure contract and returns the process exit
// code: 0 on success, 1 on error or panic.
func (d *Driver) Run(ctx context.Context, job func(ctx context.Context) error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			body := fmt.Sprintf("An unexpected error occurred: %v\n\n%s", r, debug.Stack())
			d.reportFailure(ctx, body)
			code = 1
		}
	}()

	if err := job(ctx); err != nil {
		d.reportFailure(ctx, fmt.Sprintf("%v\n\n%s", err, debug.Stack()))
		return 1
	}
	return 0
}

// Usage reports a UsageError by email and returns the nonzero exit code,
// without running any job body.
func (d *Driver) Usage(ctx context.Context, message string) int {
	err := &UsageError{Message: message}
	d.reportFailure(ctx, err.Error()+"\n")
	return 1
}

// Warnf prints a diagnostic to stderr. No notification, no termination.
func (d *Driver) Warnf(format string, args ...any) {
	fmt.Fprintf(d.errWriter(), d.Name+": "+format+"\n", args...)
}

// reportFailure prints the failure and sends the single failure email. A
// failed send is printed and otherwise ignored.
func (d *Driver) reportFailure(ctx context.Context, body string) {
	fmt.Fprintf(d.errWriter(), "%s: %s", d.Name, body)

	if d.Notifier == nil {
		return
	}
	msg := notify.Message{
		Subject:  fmt.Sprintf("Script error (script: %s)!", d.Name),
		Body:     body + "\nrun id: " + d.RunID + "\n",
		Priority: notify.PriorityHigh,
	}
	if err := d.Notifier.Notify(ctx, msg); err != nil {
		fmt.Fprintf(d.errWriter(), "%s: failed to send the failure notification: %v\n", d.Name, err)
	}
}
