// Package notify composes the notification for a finished run: the subject
// from the configured template, an HTML body around the rendered output and,
// when the body had to be truncated, the complete output as an attachment.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/arthur-debert/cmdmail/pkg/config"
	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/interp"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/arthur-debert/cmdmail/pkg/report"
	"github.com/arthur-debert/cmdmail/pkg/runner"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var bodyTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// Status values exposed as $STATUS
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Message is a composed notification ready for a mailer.
type Message struct {
	RunID      string
	From       string
	To         []string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
	Truncated  bool
}

// Attachment is a file carried alongside the body
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Composer builds messages from run results.
type Composer struct {
	Config *config.Config
	// Hostname is exposed as $HOSTNAME.
	Hostname string
	// Subject replaces Config.Message.Subject when set.
	Subject string
	// Env is the fallback for unknown names. Defaults to the process environment.
	Env interp.Environment

	now   func() time.Time
	newID func() string
}

// NewComposer returns a Composer for cfg
func NewComposer(cfg *config.Config, hostname string) *Composer {
	return &Composer{Config: cfg, Hostname: hostname}
}

func (c *Composer) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Composer) runID() string {
	if c.newID != nil {
		return c.newID()
	}
	return uuid.NewString()
}

// Status maps an exit code to $STATUS
func Status(res *runner.Result) string {
	if res.Succeeded() {
		return StatusSucceeded
	}
	return StatusFailed
}

// Table returns the completion-time substitution table for res. Every value
// except $ELAPSED is computed here; $ELAPSED is relative to the moment it is
// expanded.
func (c *Composer) Table(res *runner.Result, runID string) *interp.Table {
	table := c.Config.LoadTable(c.Hostname)
	table.
		Set("COMMAND", res.Command).
		Set("EXIT_CODE", strconv.Itoa(res.ExitCode)).
		Set("STATUS", Status(res)).
		Set("STARTED", res.Started.Format(time.RFC3339)).
		Set("FINISHED", res.Finished.Format(time.RFC3339)).
		Set("DURATION", roundDuration(res.Duration()).String()).
		Set("RUN_ID", runID).
		SetFunc("ELAPSED", func() string {
			return humanize.RelTime(res.Started, c.clock(), "ago", "from now")
		})
	return table
}

// Compose builds the message for res.
func (c *Composer) Compose(res *runner.Result) (*Message, error) {
	logger := logging.GetLogger("notify")
	done := logging.LogOperationStart(logger, "compose")
	defer done()

	rendered, err := report.Render(res.Output, c.Config.Output)
	if err != nil {
		return nil, err
	}

	runID := c.runID()
	table := c.Table(res, runID)
	expander := interp.Expander{Env: c.Env}
	if expander.Env == nil {
		expander.Env = interp.OSEnvironment{}
	}

	subjectTemplate := c.Config.Message.Subject
	if c.Subject != "" {
		subjectTemplate = c.Subject
	}

	msg := &Message{
		RunID:     runID,
		From:      c.Config.Message.From,
		To:        append([]string{}, c.Config.Message.To...),
		Subject:   singleLine(expander.Expand(subjectTemplate, table)),
		Truncated: rendered.Truncated,
	}

	attach := rendered.Truncated && c.Config.Message.AttachOutput
	if attach {
		msg.Attachment = &Attachment{
			Name:        fmt.Sprintf("output-%s.txt", runID),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(res.Output),
		}
	}

	body, err := renderBody(bodyData{
		Command:  report.Escape(res.Command),
		Source:   string(res.Source),
		Status:   Status(res),
		ExitCode: res.ExitCode,
		Host:     report.Escape(c.Hostname),
		Started:  res.Started.Format(time.RFC1123Z),
		Finished: res.Finished.Format(time.RFC1123Z),
		Duration: roundDuration(res.Duration()).String(),
		RunID:    runID,
		Listing:  rendered,
		Attached: attach,
	})
	if err != nil {
		return nil, err
	}
	msg.HTMLBody = body

	logger.Info().
		Str("runID", runID).
		Str("subject", msg.Subject).
		Int("lines", rendered.Total).
		Bool("truncated", rendered.Truncated).
		Bool("attached", attach).
		Msg("Composed notification")

	return msg, nil
}

// bodyData feeds the message template. String fields are already escaped.
type bodyData struct {
	Command  string
	Source   string
	Status   string
	ExitCode int
	Host     string
	Started  string
	Finished string
	Duration string
	RunID    string
	Listing  *report.Result
	Attached bool
}

func renderBody(data bodyData) (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.ExecuteTemplate(&buf, "message.html.tmpl", data); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render message body")
	}
	return buf.String(), nil
}

func roundDuration(d time.Duration) time.Duration {
	switch {
	case d >= time.Minute:
		return d.Round(time.Second)
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	default:
		return d.Round(time.Millisecond)
	}
}

// singleLine keeps a header value on one line
func singleLine(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}
