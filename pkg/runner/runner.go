package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/mattn/go-isatty"
)

// Source tells where a Result's output came from
type Source string

const (
	SourceCommand Source = "command"
	SourceStdin   Source = "stdin"
)

// DefaultShell is used when neither Runner.Shell nor $SHELL is set
const DefaultShell = "/bin/sh"

// DefaultWaitDelay is used when Runner.WaitDelay is zero
const DefaultWaitDelay = 2 * time.Second

// Result describes one finished run.
type Result struct {
	Command  string
	Output   string
	ExitCode int
	Started  time.Time
	Finished time.Time
	Source   Source
}

// Duration returns how long the run took
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Succeeded reports a zero exit code
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner executes commands through a shell.
type Runner struct {
	// Shell runs the command as `Shell -c command`. Empty means $SHELL, then DefaultShell.
	Shell string
	// Tee, when set, receives output as it is produced.
	Tee io.Writer
	// Stdin is passed to the command. Nil means no input.
	Stdin io.Reader
	// Dir is the working directory. Empty means the current one.
	Dir string
	// WaitDelay bounds how long output is still collected after the command
	// exits or is cancelled. Zero means DefaultWaitDelay.
	WaitDelay time.Duration

	now func() time.Time
}

// New returns a Runner using the default shell
func New() *Runner {
	return &Runner{}
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Runner) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return DefaultShell
}

// Run executes command and waits for it. A non-zero exit status is reported
// in Result.ExitCode; an error is returned only when the command could not
// be started.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	logger := logging.GetLogger("runner")
	shell := r.shell()

	logger.Info().
		Str("command", command).
		Str("shell", shell).
		Str("workingDir", r.Dir).
		Msg("Executing command")

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r.Tee != nil {
		out = io.MultiWriter(&buf, r.Tee)
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	// one writer for both streams keeps their interleaving
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	res := &Result{
		Command: command,
		Source:  SourceCommand,
		Started: r.clock(),
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCommandStart, "failed to start %s", shell).
			WithDetail("command", command)
	}

	err := cmd.Wait()
	res.Finished = r.clock()
	res.Output = buf.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case stderrors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case stderrors.Is(err, exec.ErrWaitDelay):
		// exited cleanly but a background child still held the output open
		logger.Warn().Str("command", command).Msg("Output still open after exit, truncating capture")
		res.ExitCode = 0
	default:
		return nil, errors.Wrapf(err, errors.ErrCommandStart, "failed waiting for %s", shell).
			WithDetail("command", command)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Warn().Err(ctxErr).Str("command", command).Msg("Command interrupted")
	}

	logger.Info().
		Str("command", command).
		Int("exitCode", res.ExitCode).
		Dur("duration", res.Duration()).
		Int("bytes", len(res.Output)).
		Msg("Command finished")

	return res, nil
}

// ReadInput captures everything from in. label stands in for the command
// name in the notification and defaults to "stdin".
func (r *Runner) ReadInput(in io.Reader, label string) (*Result, error) {
	if label == "" {
		label = string(SourceStdin)
	}

	res := &Result{
		Command: label,
		Source:  SourceStdin,
		Started: r.clock(),
	}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r.Tee != nil {
		out = io.MultiWriter(&buf, r.Tee)
	}
	if _, err := io.Copy(out, in); err != nil {
		return nil, errors.Wrap(err, errors.ErrInputRead, "failed to read input")
	}

	res.Finished = r.clock()
	res.Output = buf.String()

	logger := logging.GetLogger("runner")
	logger.Info().
		Str("label", label).
		Int("bytes", len(res.Output)).
		Msg("Read piped input")

	return res, nil
}

// StdinIsPiped reports whether f is a pipe or a redirected file rather than
// a terminal.
func StdinIsPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}
