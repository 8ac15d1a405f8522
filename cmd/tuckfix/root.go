package tuckfix

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/tuckfix/internal/version"
	"github.com/arthur-debert/tuckfix/pkg/config"
	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitPartialFailure = 2
)

// ExitError asks main to exit with Code without printing anything more;
// the summary has already been logged.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	verbosity  int
	configFile string
	input      string

	suffix   string
	excludes []string
	tuckr    string
	timeout  time.Duration
	boundary string
	format   string
	noColor  bool
	strict   bool
}

// overrides maps the config-bearing flags the user actually set to their
// config keys, so unset flags never shadow file or env values.
func (o *options) overrides(changed func(string) bool) map[string]interface{} {
	out := map[string]interface{}{}
	set := func(flag, key string, value interface{}) {
		if changed(flag) {
			out[key] = value
		}
	}
	set("suffix", "backup.suffix", o.suffix)
	set("exclude", "exclude", o.excludes)
	set("tuckr", "tool.binary", o.tuckr)
	set("timeout", "tool.timeout", o.timeout)
	set("boundary", "resolve.boundary", o.boundary)
	set("format", "output.format", o.format)
	set("strict", "strict", o.strict)
	if changed("no-color") && o.noColor {
		out["output.color"] = config.ColorNever
	}
	return out
}

// NewRootCmd creates the tuckfix command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "tuckfix",
		Short:         MsgRootShort,
		Long:          MsgRootLong,
		Example:       MsgRootExample,
		Args:          excludeArgs,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.excludes = append(opts.excludes, args...)
			return runResolve(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	pf.StringVarP(&opts.suffix, "suffix", "s", "backup", MsgFlagSuffix)
	pf.StringSliceVarP(&opts.excludes, "exclude", "e", nil, MsgFlagExclude)
	pf.StringVar(&opts.tuckr, "tuckr", "tuckr", MsgFlagTuckr)
	pf.DurationVar(&opts.timeout, "timeout", 2*time.Minute, MsgFlagTimeout)
	pf.StringVar(&opts.boundary, "boundary", "", MsgFlagBoundary)
	pf.StringVarP(&opts.format, "format", "f", config.FormatText, MsgFlagFormat)
	pf.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	pf.BoolVar(&opts.strict, "strict", false, MsgFlagStrict)

	rootCmd.Flags().StringVarP(&opts.input, "input", "i", "", MsgFlagInput)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// excludeArgs accepts positional arguments only as further group names
// after --exclude, so both "-e nvim -e zsh" and "--exclude nvim zsh" work.
func excludeArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.Flags().Changed("exclude") {
		return errors.Newf(errors.ErrInvalidInput, MsgErrUnexpectedArgs, strings.Join(args, " "))
	}
	return nil
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

func newConfigCmd(opts *options) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long: `Print the configuration tuckfix would run with, as TOML. It merges the
built-in defaults, the user config file, TUCKFIX_* environment variables and
the flags given on this command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			out, err := toml.Marshal(cfg.ToMap())
			if err != nil {
				return err
			}
			if cfg.Source != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", cfg.Source)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(tuckfix completion bash)

Zsh:
  $ tuckfix completion zsh > "${fpath[1]}/_tuckfix"

Fish:
  $ tuckfix completion fish > ~/.config/fish/completions/tuckfix.fish

PowerShell:
  PS> tuckfix completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "TUCKFIX",
				Section: "1",
				Source:  "tuckfix " + version.Version,
				Manual:  "tuckfix manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
