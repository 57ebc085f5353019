package config

import (
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/cmdmail/pkg/errors"
)

// Output formats accepted by Encode
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

const redacted = "********"

// fileView mirrors Config with the field names and value types of the file.
type fileView struct {
	SMTP struct {
		Host     string `toml:"host" yaml:"host"`
		Port     int    `toml:"port" yaml:"port"`
		Username string `toml:"username" yaml:"username"`
		Password string `toml:"password" yaml:"password"`
		Security string `toml:"security" yaml:"security"`
		Timeout  string `toml:"timeout" yaml:"timeout"`
	} `toml:"smtp" yaml:"smtp"`
	Message struct {
		From         string   `toml:"from" yaml:"from"`
		To           []string `toml:"to" yaml:"to"`
		Subject      string   `toml:"subject" yaml:"subject"`
		AttachOutput bool     `toml:"attach_output" yaml:"attach_output"`
	} `toml:"message" yaml:"message"`
	Output struct {
		MaxLines  int `toml:"max_lines" yaml:"max_lines"`
		KeepLines int `toml:"keep_lines" yaml:"keep_lines"`
	} `toml:"output" yaml:"output"`
	Logging struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"logging" yaml:"logging"`
	Variables map[string]string `toml:"variables" yaml:"variables"`
}

func newFileView(c *Config) fileView {
	var v fileView
	v.SMTP.Host = c.SMTP.Host
	v.SMTP.Port = c.SMTP.Port
	v.SMTP.Username = c.SMTP.Username
	if c.SMTP.Password != "" {
		v.SMTP.Password = redacted
	}
	v.SMTP.Security = c.SMTP.Security
	v.SMTP.Timeout = c.SMTP.Timeout.String()

	v.Message.From = c.Message.From
	v.Message.To = append([]string{}, c.Message.To...)
	v.Message.Subject = c.Message.Subject
	v.Message.AttachOutput = c.Message.AttachOutput

	v.Output.MaxLines = c.Output.MaxLines
	v.Output.KeepLines = c.Output.KeepLines
	v.Logging.Level = c.Logging.Level

	v.Variables = make(map[string]string, len(c.Variables))
	for name, value := range c.Variables {
		v.Variables[name] = value
	}
	return v
}

// Encode renders the effective configuration in the given format with the
// SMTP password redacted.
func Encode(c *Config, format string) ([]byte, error) {
	view := newFileView(c)

	switch format {
	case FormatTOML, "":
		out, err := toml.Marshal(view)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode TOML")
		}
		return out, nil
	case FormatYAML:
		out, err := yaml.Marshal(view)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (want toml or yaml)", format)
	}
}
