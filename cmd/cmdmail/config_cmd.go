package cmdmail

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdmail/pkg/config"
	"github.com/arthur-debert/cmdmail/pkg/paths"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCmd(o))
	cmd.AddCommand(newConfigShowCmd(o))
	cmd.AddCommand(newConfigPathCmd(o))
	return cmd
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configPath
			if path == "" {
				path = paths.New().DefaultConfigFile()
			} else {
				path = paths.ExpandHome(path)
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigCreated, path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hostname := o.resolveHostname()
			cfg, err := config.Load(config.LoadOptions{
				Path:     o.configPath,
				Hostname: func() (string, error) { return hostname, nil },
			})
			if err != nil {
				return err
			}
			out, err := config.Encode(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagFormat)
	return cmd
}

func newConfigPathCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if o.configPath != "" {
				fmt.Fprintf(out, MsgConfigPathFound, paths.ExpandHome(o.configPath))
				return
			}
			p := paths.New()
			if path, found := p.ConfigFile(); found {
				fmt.Fprintf(out, MsgConfigPathFound, path)
				return
			}
			fmt.Fprintf(out, MsgConfigPathNone, p.DefaultConfigFile())
		},
	}
}
