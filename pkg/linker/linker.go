// Package linker runs `tuckr add` for a group and interprets a failure
// according to why the add was attempted.
package linker

import (
	"context"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/stats"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/rs/zerolog"
)

// Mode selects how a failed add is interpreted.
type Mode int

const (
	// Standalone is used for groups that had no conflicts; a failure is
	// unexpected and counted as an error.
	Standalone Mode = iota

	// ConflictResolution is used right after a relocation; a failure only
	// means conflicts remain, which the next status query will show.
	ConflictResolution
)

func (m Mode) String() string {
	switch m {
	case Standalone:
		return "standalone"
	case ConflictResolution:
		return "conflict-resolution"
	default:
		return "unknown"
	}
}

// Linker invokes the add operation of a types.Tool.
type Linker struct {
	tool     types.Tool
	excludes []string
	logger   zerolog.Logger
}

// New creates a Linker passing excludes to every add.
func New(tool types.Tool, excludes []string) *Linker {
	return &Linker{
		tool:     tool,
		excludes: append([]string(nil), excludes...),
		logger:   logging.GetLogger("linker"),
	}
}

// Link adds group and records the result in st. It returns the error of
// the add, if any, after it has been counted.
func (l *Linker) Link(ctx context.Context, group string, mode Mode, st *stats.Stats) error {
	err := l.tool.Add(ctx, group, l.excludes)
	if err == nil {
		l.logger.Info().Str("group", group).Msgf("  tuckr add %s succeeded", group)
		st.Increment(stats.AddedGroups)
		return nil
	}

	if errors.HasErrorCode(err, errors.ErrToolNotFound) {
		l.logger.Error().Err(err).Str("group", group).Msg("tuckr is not installed or not in PATH")
		st.Increment(stats.Errors)
		return err
	}

	details := errors.GetErrorDetails(err)
	event := l.logger.Info()
	msg := "  tuckr add %s did not succeed (expected while conflicts remain)"
	if mode == Standalone {
		event = l.logger.Error()
		msg = "  tuckr add %s failed"
		st.Increment(stats.Errors)
	}
	event.
		Str("group", group).
		Str("mode", mode.String()).
		Interface("exitCode", details["exitCode"]).
		Interface("stderr", details["stderr"]).
		Msgf(msg, group)

	return err
}
