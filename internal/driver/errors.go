// Package driver implements the shared job-execution and notification
// contract for the cronjob family.
package driver

import "fmt"

// UsageError reports invalid command-line arguments. The driver mails it to
// the admin and exits nonzero without running the job body.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Message)
}

// ExternalProcessError reports a nonzero exit from a wrapped external binary.
type ExternalProcessError struct {
	Binary   string
	ExitCode int
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("external process error: %s exited with code %d", e.Binary, e.ExitCode)
}
