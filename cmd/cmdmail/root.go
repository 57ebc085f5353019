package cmdmail

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdmail/internal/version"
	"github.com/arthur-debert/cmdmail/pkg/config"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/arthur-debert/cmdmail/pkg/mailer"
	"github.com/arthur-debert/cmdmail/pkg/paths"
)

// deps are the collaborators the commands reach outside the process with.
type deps struct {
	newSender func(cfg *config.Config, dryRun bool, out io.Writer) mailer.Sender
	hostname  func() (string, error)
}

func defaultDeps() deps {
	return deps{
		newSender: func(cfg *config.Config, dryRun bool, out io.Writer) mailer.Sender {
			if dryRun {
				return mailer.NewPreviewSender(out)
			}
			return mailer.NewSMTPSender(cfg.SMTP)
		},
		hostname: os.Hostname,
	}
}

// rootOptions holds the flag values shared by the commands
type rootOptions struct {
	deps deps

	verbosity  int
	configPath string

	to        []string
	subject   string
	maxLines  int
	keepLines int
	dryRun    bool
	tee       bool
	onFailure bool
	label     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	o := &rootOptions{deps: d}

	rootCmd := &cobra.Command{
		Use:     "cmdmail [flags] [--] [command...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{
				Verbosity: o.verbosity,
				LogFile:   paths.New().LogFilePath(),
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:              o.run,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&o.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", "", MsgFlagConfig)

	flags := rootCmd.Flags()
	flags.StringArrayVar(&o.to, "to", nil, MsgFlagTo)
	flags.StringVar(&o.subject, "subject", "", MsgFlagSubject)
	flags.IntVar(&o.maxLines, "max-lines", 0, MsgFlagMaxLines)
	flags.IntVar(&o.keepLines, "keep-lines", 0, MsgFlagKeepLines)
	flags.BoolVar(&o.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&o.tee, "tee", false, MsgFlagTee)
	flags.BoolVar(&o.onFailure, "on-failure", false, MsgFlagOnFailure)
	flags.StringVar(&o.label, "label", "", MsgFlagLabel)
	// everything from the first positional argument on belongs to the command
	flags.SetInterspersed(false)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConfigCmd(o))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
