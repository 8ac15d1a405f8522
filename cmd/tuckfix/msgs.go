package tuckfix

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Back up conflicting files so tuckr can link your dotfiles"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgWaitingForInput = "Reading tuckr status JSON from stdin..."
	MsgInteractiveHint = "Try: tuckr status --json | tuckfix"
	MsgVersionFormat   = "tuckfix version %s\n  commit: %s\n  built:  %s\n"
	MsgPartialFailure  = "run finished with groups needing attention"

	// Error messages
	MsgErrInteractive    = "tuckfix reads the JSON output of 'tuckr status --json' from stdin, but stdin is a terminal"
	MsgErrOpenInput      = "cannot open input file %s"
	MsgErrUnexpectedArgs = "unexpected arguments %q; group names are only accepted after --exclude"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/tuckfix/config.toml)"
	MsgFlagInput    = "Read the status JSON from a file instead of stdin"
	MsgFlagSuffix   = "Suffix appended to renamed backup files and folders"
	MsgFlagExclude  = "Groups to skip entirely (--exclude a b, -e a -e b or a,b); also passed to every tuckr add"
	MsgFlagTuckr    = "Path or name of the tuckr binary"
	MsgFlagTimeout  = "Maximum duration of a single tuckr invocation"
	MsgFlagBoundary = "Directory at which project folder inference stops (default $HOME)"
	MsgFlagFormat   = "Report format written to stdout: text, json or yaml"
	MsgFlagNoColor  = "Disable ANSI colors in log output"
	MsgFlagStrict   = "Exit with status 2 when any group was left unresolved or an error occurred"
	MsgFlagDefaults = "Print the built-in defaults instead of the effective configuration"
)

// Long messages
const (
	MsgRootLong = `tuckfix reads the JSON printed by 'tuckr status --json' and resolves the
conflicts that keep tuckr from linking your dotfile groups.

For each conflicting group it looks for a project folder: an ancestor of the
first conflicting file named after the group (e.g. ~/.config/nvim for the
nvim group). That folder is renamed to <folder>-<suffix> in one go. Without
a project folder every conflicting file is renamed on its own. tuckr add is
then retried, up to 5 times per group. Nothing is ever deleted or
overwritten.`

	MsgRootExample = `  # Basic usage
  tuckr status --json | tuckfix

  # Custom backup suffix, skipping some groups
  tuckr status --json | tuckfix --suffix orig --exclude nvim zsh

  # Verbose logs and a machine readable report
  tuckr status --json | tuckfix -v --format json`
)
