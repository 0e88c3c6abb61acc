// Package notify sends cronjob status emails via SMTP.
package notify

import "fmt"

// SendError represents a failed email transmission.
// Notification failures are terminal: they are never retried and never
// trigger a further notification.
type SendError struct {
	Message string
	Cause   error
}

func (e *SendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("notification error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("notification error: %s", e.Message)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}
