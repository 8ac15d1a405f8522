// Package tuckr runs the tuckr binary. It implements types.Tool on top of
// `tuckr add <group> [--exclude ...]` and `tuckr status <group> --json`.
package tuckr

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/status"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultBinary is the executable looked up in PATH.
const DefaultBinary = "tuckr"

// DefaultTimeout bounds a single tuckr invocation.
const DefaultTimeout = 2 * time.Minute

// Options configures an ExecTool.
type Options struct {
	Binary  string
	Timeout time.Duration
}

// ExecTool implements types.Tool by running the tuckr executable.
type ExecTool struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

var _ types.Tool = (*ExecTool)(nil)

// New creates an ExecTool. Zero options fall back to the defaults; a
// negative timeout disables it.
func New(opts Options) *ExecTool {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &ExecTool{
		binary:  opts.Binary,
		timeout: opts.Timeout,
		logger:  logging.GetLogger("tuckr"),
	}
}

// AddArgs returns the arguments of an add invocation.
func AddArgs(group string, excludes []string) []string {
	args := []string{"add", group}
	if len(excludes) > 0 {
		args = append(args, "--exclude")
		args = append(args, excludes...)
	}
	return args
}

// StatusArgs returns the arguments of a per-group status query.
func StatusArgs(group string) []string {
	return []string{"status", group, "--json"}
}

// Add runs tuckr add. A non-zero exit is returned as ErrLink carrying the
// exit code and stderr; a missing binary as ErrToolNotFound.
func (t *ExecTool) Add(ctx context.Context, group string, excludes []string) error {
	res := t.run(ctx, AddArgs(group, excludes))
	if res.err == nil {
		t.logger.Debug().Str("group", group).Str("stdout", res.stdout).Msg("tuckr add succeeded")
		return nil
	}
	if errors.IsErrorCode(res.err, errors.ErrToolNotFound) {
		return res.err
	}
	return errors.Wrapf(res.err, errors.ErrLink, "tuckr add %s failed", group).
		WithDetail("group", group).
		WithDetail("exitCode", res.exitCode).
		WithDetail("stderr", res.stderr)
}

// Status runs tuckr status for one group. tuckr exits non-zero while a
// group has conflicts, so any non-empty stdout is parsed regardless of the
// exit code.
func (t *ExecTool) Status(ctx context.Context, group string) (*types.StatusSnapshot, error) {
	res := t.run(ctx, StatusArgs(group))
	if errors.IsErrorCode(res.err, errors.ErrToolNotFound) {
		return nil, res.err
	}

	if strings.TrimSpace(res.stdout) == "" {
		cause := res.err
		if cause == nil {
			cause = stderrors.New("no output")
		}
		return nil, errors.Wrapf(cause, errors.ErrStatusQuery, "tuckr status %s produced no output", group).
			WithDetail("group", group).
			WithDetail("exitCode", res.exitCode).
			WithDetail("stderr", res.stderr)
	}

	snap, err := status.Parse([]byte(res.stdout))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStatusQuery, "cannot decode status of group %s", group).
			WithDetail("group", group)
	}
	return snap, nil
}

type runResult struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
}

func (t *ExecTool) run(ctx context.Context, args []string) runResult {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	logging.LogCommand(t.logger, t.binary, args)
	done := logging.LogOperationStart(t.logger, t.binary+" "+args[0])
	defer done()

	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := runResult{
		stdout: stdout.String(),
		stderr: strings.TrimSpace(stderr.String()),
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	switch {
	case stderrors.Is(err, exec.ErrNotFound), stderrors.Is(err, fs.ErrNotExist):
		res.exitCode = -1
		res.err = errors.Wrapf(err, errors.ErrToolNotFound,
			"cannot find '%s' in PATH; make sure it is installed", t.binary).
			WithDetail("binary", t.binary)
	case ctx.Err() != nil:
		res.exitCode = -1
		res.err = errors.Wrapf(ctx.Err(), errors.ErrInternal, "%s %s did not finish", t.binary, args[0]).
			WithDetail("timeout", t.timeout.String())
	case stderrors.As(err, &exitErr):
		res.exitCode = exitErr.ExitCode()
		res.err = err
	default:
		res.exitCode = -1
		res.err = err
	}

	t.logger.Debug().
		Err(err).
		Str("command", t.binary).
		Strs("args", args).
		Int("exitCode", res.exitCode).
		Str("stderr", res.stderr).
		Msg("Command execution failed")

	return res
}
