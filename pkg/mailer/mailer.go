// Package mailer delivers composed notifications.
package mailer

import (
	"bytes"
	"context"
	"time"

	"gopkg.in/mail.v2"

	"github.com/arthur-debert/cmdmail/pkg/config"
	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/arthur-debert/cmdmail/pkg/notify"
)

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg *notify.Message) error
}

// dialer is the part of *mail.Dialer SMTPSender uses
type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPSender sends through an SMTP server. It makes a single attempt.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer dialer
}

// NewSMTPSender returns a sender for cfg
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, dialer: newDialer(cfg)}
}

func newDialer(cfg config.SMTPConfig) *mail.Dialer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}

	switch cfg.Security {
	case config.SecurityTLS:
		d.SSL = true
	case config.SecurityNone:
		d.SSL = false
		d.StartTLSPolicy = mail.NoStartTLS
	default:
		d.SSL = false
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	return d
}

// Send delivers msg. ctx is only checked before dialing; the dial itself is
// bounded by the configured timeout.
func (s *SMTPSender) Send(ctx context.Context, msg *notify.Message) error {
	logger := logging.GetLogger("mailer")

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrMailSend, "send cancelled")
	}

	m := BuildMessage(msg)
	start := time.Now()
	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Wrapf(err, errors.ErrMailSend, "failed to send via %s:%d", s.cfg.Host, s.cfg.Port).
			WithDetail("run_id", msg.RunID)
	}

	logger.Info().
		Str("host", s.cfg.Host).
		Int("port", s.cfg.Port).
		Strs("to", msg.To).
		Str("runID", msg.RunID).
		Dur("duration", time.Since(start)).
		Msg("Notification sent")
	return nil
}

// BuildMessage converts msg into a MIME message
func BuildMessage(msg *notify.Message) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", msg.From)
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("X-Cmdmail-Run", msg.RunID)
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/html", msg.HTMLBody)

	if a := msg.Attachment; a != nil {
		m.AttachReader(a.Name, bytes.NewReader(a.Data), mail.SetHeader(map[string][]string{
			"Content-Type": {a.ContentType},
		}))
	}
	return m
}
