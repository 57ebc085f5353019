package mailer

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/notify"
	"github.com/arthur-debert/cmdmail/pkg/style"
)

// PreviewSender prints the message instead of sending it.
type PreviewSender struct {
	out    io.Writer
	styles style.Styles
}

// NewPreviewSender writes previews to out. Styling is applied only when out
// is a colour-capable terminal.
func NewPreviewSender(out io.Writer) *PreviewSender {
	return &PreviewSender{out: out, styles: style.For(out)}
}

// Send writes a summary followed by the full MIME message.
func (p *PreviewSender) Send(_ context.Context, msg *notify.Message) error {
	attachment := "none"
	if msg.Attachment != nil {
		attachment = fmt.Sprintf("%s (%d bytes)", msg.Attachment.Name, len(msg.Attachment.Data))
	}

	fields := [][2]string{
		{"From", msg.From},
		{"To", fmt.Sprint(msg.To)},
		{"Subject", msg.Subject},
		{"Run", msg.RunID},
		{"Attachment", attachment},
	}

	if _, err := fmt.Fprintln(p.out, p.styles.Heading.Render("Dry run: notification not sent")); err != nil {
		return errors.Wrap(err, errors.ErrMailSend, "failed to write preview")
	}
	for _, f := range fields {
		fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render(fmt.Sprintf("%-11s", f[0]+":")), f[1])
	}
	fmt.Fprintln(p.out)

	if _, err := BuildMessage(msg).WriteTo(p.out); err != nil {
		return errors.Wrap(err, errors.ErrMailSend, "failed to write preview")
	}
	fmt.Fprintln(p.out)
	return nil
}
