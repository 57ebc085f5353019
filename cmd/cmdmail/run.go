package cmdmail

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdmail/pkg/config"
	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/arthur-debert/cmdmail/pkg/notify"
	"github.com/arthur-debert/cmdmail/pkg/runner"
)

// ExitError carries the exit status of the reported command. It is returned
// after the notification went out, so there is nothing left to print.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cli")

	hostname := o.resolveHostname()
	cfg, err := config.Load(config.LoadOptions{
		Path:      o.configPath,
		Hostname:  func() (string, error) { return hostname, nil },
		Overrides: o.overrides(cmd),
	})
	if err != nil {
		return err
	}
	logging.SetLevel(o.verbosity, cfg.Logging.Level)

	if err := o.validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := o.capture(ctx, cmd, args)
	if err != nil {
		return err
	}

	if o.onFailure && res.Succeeded() {
		logger.Info().
			Str("command", res.Command).
			Msg("Command succeeded, notification skipped")
		return nil
	}

	composer := notify.NewComposer(cfg, hostname)
	composer.Subject = o.subject
	msg, err := composer.Compose(res)
	if err != nil {
		return err
	}

	// an interrupted command is still reported
	sender := o.deps.newSender(cfg, o.dryRun, cmd.OutOrStdout())
	if err := sender.Send(context.WithoutCancel(ctx), msg); err != nil {
		logger.Error().Err(err).Str("run_id", msg.RunID).Msg("Notification failed")
		return err
	}

	return exitStatus(res)
}

func (o *rootOptions) resolveHostname() string {
	host, err := o.deps.hostname()
	if err != nil || host == "" {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Could not determine hostname")
		return "localhost"
	}
	return host
}

// overrides returns the configuration keys set on the command line
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	values := map[string]interface{}{}
	if len(o.to) > 0 {
		values["message.to"] = append([]string{}, o.to...)
	}
	if flags.Changed("max-lines") {
		values["output.max_lines"] = o.maxLines
	}
	if flags.Changed("keep-lines") {
		values["output.keep_lines"] = o.keepLines
	}
	return values
}

// validate checks the configuration before anything runs. A dry run never
// reaches the server, so only the output limits matter there.
func (o *rootOptions) validate(cfg *config.Config) error {
	if o.dryRun {
		return cfg.Output.Validate()
	}
	return cfg.Validate()
}

func (o *rootOptions) capture(ctx context.Context, cmd *cobra.Command, args []string) (*runner.Result, error) {
	r := runner.New()
	if o.tee {
		r.Tee = cmd.OutOrStdout()
	}

	if len(args) > 0 {
		r.Stdin = cmd.InOrStdin()
		return r.Run(ctx, strings.Join(args, " "))
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !runner.StdinIsPiped(f) {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}
	return r.ReadInput(in, o.label)
}

func exitStatus(res *runner.Result) error {
	switch {
	case res.ExitCode == 0:
		return nil
	case res.ExitCode < 0:
		// killed by a signal
		return &ExitError{Code: 1}
	default:
		return &ExitError{Code: res.ExitCode}
	}
}
