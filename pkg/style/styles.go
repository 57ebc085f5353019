// Package style holds the terminal styles shared by the CLI output: the
// dry-run preview and error reporting.
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles are bound to the renderer of one output stream.
type Styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// For returns styles for w. Anything but a colour terminal gets plain text.
func For(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	if !ColorTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Heading: r.NewStyle().
			Foreground(PrimaryColor).
			Bold(true),
		Label: r.NewStyle().
			Foreground(MutedColor),
		Success: r.NewStyle().
			Foreground(SuccessColor).
			Bold(true),
		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(MutedColor).
			Italic(true),
	}
}

// ColorTerminal reports whether w is a terminal that should get colours.
// NO_COLOR turns colours off everywhere.
func ColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
