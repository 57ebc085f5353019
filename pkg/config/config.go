package config

import (
	"net/mail"
	"time"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/interp"
	"github.com/arthur-debert/cmdmail/pkg/report"
)

// Security modes for the SMTP connection
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityNone     = "none"
)

// Config is the complete cmdmail configuration
type Config struct {
	SMTP      SMTPConfig        `koanf:"smtp"`
	Message   MessageConfig     `koanf:"message"`
	Output    report.Thresholds `koanf:"output"`
	Logging   LoggingConfig     `koanf:"logging"`
	Variables map[string]string `koanf:"variables"`
}

// SMTPConfig describes the outgoing mail server
type SMTPConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	Security string        `koanf:"security"`
	Timeout  time.Duration `koanf:"timeout"`
}

// MessageConfig describes the notification envelope
type MessageConfig struct {
	From         string   `koanf:"from"`
	To           []string `koanf:"to"`
	Subject      string   `koanf:"subject"`
	AttachOutput bool     `koanf:"attach_output"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `koanf:"level"`
}

// Validate checks that the configuration can be used to send a notification.
func (c *Config) Validate() error {
	if c.Message.From == "" {
		return errors.New(errors.ErrConfigValid, "message.from is empty")
	}
	if _, err := mail.ParseAddress(c.Message.From); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "message.from %q is not an address", c.Message.From)
	}
	if len(c.Message.To) == 0 {
		return errors.New(errors.ErrConfigValid, "message.to has no recipients")
	}
	for _, to := range c.Message.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "recipient %q is not an address", to)
		}
	}

	if c.SMTP.Host == "" {
		return errors.New(errors.ErrConfigValid, "smtp.host is empty")
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return errors.Newf(errors.ErrConfigValid, "smtp.port %d is out of range", c.SMTP.Port)
	}
	switch c.SMTP.Security {
	case SecurityStartTLS, SecurityTLS, SecurityNone:
	default:
		return errors.Newf(errors.ErrConfigValid, "smtp.security %q is not one of starttls, tls, none", c.SMTP.Security)
	}
	if c.SMTP.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "smtp.timeout must not be negative")
	}

	if err := c.Output.Validate(); err != nil {
		return err
	}

	for name := range c.Variables {
		if !interp.IsIdentifier(name) {
			return errors.Newf(errors.ErrConfigValid, "variable name %q may only use letters, digits and _", name)
		}
	}

	return nil
}
