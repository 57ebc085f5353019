// Package report turns captured command output into the numbered, HTML-safe
// listing embedded in a notification body. Long output is cut down to a head
// and a tail around a single "lines omitted" marker.
package report

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/arthur-debert/cmdmail/pkg/errors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// Thresholds control truncation. Output longer than MaxLines lines is reduced
// to KeepLines lines, split between head and tail.
type Thresholds struct {
	MaxLines  int `koanf:"max_lines" toml:"max_lines" yaml:"max_lines"`
	KeepLines int `koanf:"keep_lines" toml:"keep_lines" yaml:"keep_lines"`
}

// Validate returns an ErrInvalidThresholds error when the thresholds cannot
// be rendered with.
func (th Thresholds) Validate() error {
	if th.MaxLines < 0 || th.KeepLines < 0 {
		return errors.Newf(errors.ErrInvalidThresholds,
			"thresholds must not be negative (max_lines=%d, keep_lines=%d)", th.MaxLines, th.KeepLines).
			WithDetail("max_lines", th.MaxLines).
			WithDetail("keep_lines", th.KeepLines)
	}
	if th.KeepLines > th.MaxLines {
		return errors.Newf(errors.ErrInvalidThresholds,
			"keep_lines (%d) must not exceed max_lines (%d)", th.KeepLines, th.MaxLines).
			WithDetail("max_lines", th.MaxLines).
			WithDetail("keep_lines", th.KeepLines)
	}
	return nil
}

// Line is one rendered output line. Text is already HTML-escaped.
type Line struct {
	Number int
	Text   string
}

// Result is a rendered listing.
type Result struct {
	// Body is the HTML table fragment.
	Body string
	// Head holds every line when not truncated, the leading lines otherwise.
	Head []Line
	// Tail is empty unless Truncated.
	Tail []Line
	// Omitted is the count shown in the marker, total minus MaxLines.
	Omitted   int
	Truncated bool
	Total     int
}

// Lines returns head and tail in order.
func (r *Result) Lines() []Line {
	out := make([]Line, 0, len(r.Head)+len(r.Tail))
	out = append(out, r.Head...)
	return append(out, r.Tail...)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape replaces the characters that would be read as markup.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Render builds the listing for output. It fails only when th is invalid,
// and in that case does no work.
func Render(output string, th Thresholds) (*Result, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}

	lines := strings.Split(output, "\n")
	total := len(lines)
	res := &Result{Total: total}

	if total <= th.MaxLines {
		res.Head = numbered(lines, 1)
	} else {
		headCount := th.KeepLines / 2
		tailCount := th.KeepLines - headCount
		res.Head = numbered(lines[:headCount], 1)
		res.Tail = numbered(lines[total-tailCount:], total-tailCount+1)
		res.Omitted = total - th.MaxLines
		res.Truncated = true
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "listing.tmpl", res); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render output listing")
	}
	res.Body = buf.String()

	return res, nil
}

func numbered(lines []string, first int) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Number: first + i, Text: Escape(l)}
	}
	return out
}
