package tuckfix

import (
	"io"
	"os"

	"github.com/arthur-debert/tuckfix/pkg/backup"
	"github.com/arthur-debert/tuckfix/pkg/config"
	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/filesystem"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/paths"
	"github.com/arthur-debert/tuckfix/pkg/reconcile"
	"github.com/arthur-debert/tuckfix/pkg/status"
	"github.com/arthur-debert/tuckfix/pkg/tuckr"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/arthur-debert/tuckfix/pkg/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		File:      opts.configFile,
		Overrides: opts.overrides(cmd.Flags().Changed),
	})
}

// setup loads the configuration and configures logging and styling. It
// must run before any component grabs a logger.
func setup(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	stderr, _ := cmd.ErrOrStderr().(*os.File)
	useColor := ui.ColorEnabled(cfg.Output.Color, stderr)

	stdout, _ := cmd.OutOrStdout().(*os.File)
	ui.SetColor(ui.ColorEnabled(cfg.Output.Color, stdout))

	logging.SetupLogger(logging.Options{
		Verbosity: opts.verbosity,
		Color:     useColor,
		Console:   cmd.ErrOrStderr(),
	})
	return cfg, nil
}

func runResolve(cmd *cobra.Command, opts *options) error {
	cfg, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	logger := logging.GetLogger("cmd")
	logger.Debug().
		Str("suffix", cfg.Backup.Suffix).
		Strs("exclude", cfg.Exclude).
		Str("tuckr", cfg.Tool.Binary).
		Str("config", cfg.Source).
		Msg("Configuration loaded")

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output format")
	}

	snap, err := readSnapshot(cmd, opts.input)
	if err != nil {
		return err
	}

	p, err := paths.New()
	if err != nil {
		return err
	}
	boundary, err := p.Boundary(cfg.Resolve.Boundary)
	if err != nil {
		return err
	}

	tool := tuckr.New(tuckr.Options{Binary: cfg.Tool.Binary, Timeout: cfg.Tool.Timeout})
	runner := reconcile.New(tool, backup.NewRelocator(filesystem.NewOS()), reconcile.Options{
		Suffix:   cfg.Backup.Suffix,
		Excludes: cfg.Exclude,
		Boundary: boundary,
	})

	report := runner.Run(cmd.Context(), snap)
	report.Stats.Log(logger)

	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := renderer.RenderReport(report); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render report")
	}

	if cfg.Strict && report.Failed() {
		return &ExitError{Code: ExitPartialFailure, Message: MsgPartialFailure}
	}
	return nil
}

// readSnapshot reads the status document from --input or stdin. A stdin
// attached to a terminal is refused: tuckfix would wait forever.
func readSnapshot(cmd *cobra.Command, input string) (*types.StatusSnapshot, error) {
	logger := logging.GetLogger("cmd")

	var r io.Reader
	if input != "" {
		f, err := os.Open(paths.ExpandHome(input))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrOpenInput, input)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		r = cmd.InOrStdin()
		if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logger.Info().Msg(MsgInteractiveHint)
			return nil, errors.New(errors.ErrInvalidInput, MsgErrInteractive)
		}
		logger.Debug().Msg(MsgWaitingForInput)
	}

	return status.Read(r)
}
