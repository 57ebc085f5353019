package cmdmail

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run a command and email its output"
	MsgConfigShort     = "Inspect and create the configuration file"
	MsgConfigInitShort = "Write a commented default configuration file"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigPathShort = "Print the configuration file location"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigCreated   = "Created config file at %s\n"
	MsgConfigPathFound = "%s\n"
	MsgConfigPathNone  = "%s (not found, built-in defaults in use)\n"
	MsgVersionFormat   = "cmdmail version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoInput = "nothing to report: give a command or pipe input into cmdmail"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/cmdmail/config.toml)"
	MsgFlagTo        = "Recipient address, replaces the configured ones (repeatable)"
	MsgFlagSubject   = "Subject template, expanded once the command has finished"
	MsgFlagMaxLines  = "Output longer than this many lines is truncated"
	MsgFlagKeepLines = "Lines kept from a truncated output, split between head and tail"
	MsgFlagDryRun    = "Print the notification instead of sending it"
	MsgFlagTee       = "Also echo the output to standard output"
	MsgFlagOnFailure = "Only notify when the command exits with a non-zero status"
	MsgFlagLabel     = "Name shown for piped input in place of a command"
	MsgFlagForce     = "Overwrite an existing config file"
	MsgFlagFormat    = "Output format: toml or yaml"
)

const MsgRootLong = `cmdmail runs a shell command, captures everything it writes to stdout and
stderr and emails a report once it has finished: the command, its exit status,
timings and the output as an HTML listing. Long output is cut down to its head
and tail; the complete text is then attached.

Without a command, cmdmail reports on whatever is piped into it.

cmdmail exits with the status of the command it ran.`

const MsgRootExample = `  cmdmail -- make release
  cmdmail --to ops@example.com --on-failure -- ./backup.sh
  journalctl -u backup --since today | cmdmail --label backup-log
  cmdmail --dry-run -- ls -la`

const MsgCompletionLong = `To load completions:

Bash:
  $ source <(cmdmail completion bash)

Zsh:
  $ cmdmail completion zsh > "${fpath[1]}/_cmdmail"

Fish:
  $ cmdmail completion fish | source

PowerShell:
  PS> cmdmail completion powershell | Out-String | Invoke-Expression`

const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
