// Package notify sends cronjob status emails via SMTP.
//
// Every cronjob in this family reports its outcome by email: one message on
// success, one high-priority message on failure. The SMTP credentials come
// from the per-script configuration file ([SMTPServer] section); the subject
// is suffixed with the local hostname so that reports from different
// deployments remain distinguishable in a shared inbox.
package notify

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/ubtue/cronjobs/internal/config"
)

// Priority classifies a notification. High is used for failures, Normal for
// routine success reports.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
	PriorityLow
)

// Message is a single plain-text notification.
type Message struct {
	Subject   string
	Body      string
	Sender    string // empty = Options.DefaultSender
	Recipient string // empty = Options.DefaultRecipient
	Priority  Priority
}

// Notifier delivers notifications. The driver depends on this interface so
// that tests can substitute a recording fake.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Options carries the explicit defaults that the original scripts kept in
// module-level globals.
type Options struct {
	DefaultSender    string
	DefaultRecipient string
	Hostname         string // empty = os.Hostname()
}

// SMTPNotifier sends messages through a real SMTP server using opportunistic
// STARTTLS and LOGIN authentication. One connection is opened per message and
// closed when the send completes.
type SMTPNotifier struct {
	smtp     config.SMTPConfig
	opts     Options
	hostname string
}

// Compile-time interface check.
var _ Notifier = (*SMTPNotifier)(nil)

// New creates an SMTPNotifier from resolved SMTP credentials.
func New(smtp config.SMTPConfig, opts Options) *SMTPNotifier {
	hostname := opts.Hostname
	if hostname == "" {
		if h, err := os.Hostname(); err == nil {
			hostname = h
		} else {
			hostname = "unknown"
		}
	}
	return &SMTPNotifier{smtp: smtp, opts: opts, hostname: hostname}
}

// Notify sends msg as a single plain-text UTF-8 email.
func (n *SMTPNotifier) Notify(ctx context.Context, msg Message) error {
	m, err := n.build(msg)
	if err != nil {
		return err
	}

	client, err := n.client()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &SendError{
			Message: fmt.Sprintf("failed to send %q via %s", msg.Subject, n.smtp.Address),
			Cause:   err,
		}
	}
	return nil
}

// build assembles the wire-format message: hostname-suffixed subject,
// plain-text body, importance header derived from the priority.
func (n *SMTPNotifier) build(msg Message) (*mail.Msg, error) {
	sender := msg.Sender
	if sender == "" {
		sender = n.opts.DefaultSender
	}
	recipient := msg.Recipient
	if recipient == "" {
		recipient = n.opts.DefaultRecipient
	}

	m := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8))
	if err := m.From(sender); err != nil {
		return nil, &SendError{Message: fmt.Sprintf("invalid sender address %q", sender), Cause: err}
	}
	if err := m.To(recipient); err != nil {
		return nil, &SendError{Message: fmt.Sprintf("invalid recipient address %q", recipient), Cause: err}
	}

	m.Subject(msg.Subject + " (from: " + n.hostname + ")")
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	switch msg.Priority {
	case PriorityHigh:
		m.SetImportance(mail.ImportanceHigh)
	case PriorityLow:
		m.SetImportance(mail.ImportanceLow)
	default:
		m.SetImportance(mail.ImportanceNormal)
	}

	return m, nil
}

// client creates a mail client for the configured server. The address may be
// bare ("smtp.example.org") or carry an explicit port.
func (n *SMTPNotifier) client() (*mail.Client, error) {
	host := n.smtp.Address
	port := 0
	if h, p, err := net.SplitHostPort(n.smtp.Address); err == nil {
		if parsed, convErr := strconv.Atoi(p); convErr == nil {
			host = h
			port = parsed
		}
	}

	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(n.smtp.User),
		mail.WithPassword(n.smtp.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if port != 0 {
		opts = append(opts, mail.WithPort(port))
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, &SendError{
			Message: fmt.Sprintf("failed to create SMTP client for %q", n.smtp.Address),
			Cause:   err,
		}
	}
	return client, nil
}
