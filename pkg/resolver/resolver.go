// Package resolver drives one group from its reported conflicts to a
// terminal outcome. Each iteration relocates either the inferred project
// folder or every conflicting file, re-links, and re-queries tuckr; the
// loop is bounded by MaxAttempts.
package resolver

import (
	"context"
	"fmt"

	"github.com/arthur-debert/tuckfix/pkg/backup"
	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/linker"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/project"
	"github.com/arthur-debert/tuckfix/pkg/stats"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/rs/zerolog"
)

// MaxAttempts bounds the relocation iterations per group. Each iteration
// usually clears one conflict root (e.g. ~/.config/x, then ~/.local/share/x).
const MaxAttempts = 5

// Relocator moves conflicting paths to their backup names.
type Relocator interface {
	RelocateFolder(path, suffix string) (string, error)
	RelocateFile(entry types.ConflictEntry, suffix string) (backup.Relocation, error)
}

var _ Relocator = (*backup.Relocator)(nil)

// Options configures a Driver.
type Options struct {
	// Suffix is appended to relocated paths as "-<suffix>".
	Suffix string

	// Boundary stops project folder inference, normally the home directory.
	Boundary string
}

// Driver resolves groups one at a time. It holds no per-group state.
type Driver struct {
	tool      types.Tool
	relocator Relocator
	linker    *linker.Linker
	opts      Options
	logger    zerolog.Logger
}

// New creates a Driver.
func New(tool types.Tool, relocator Relocator, lnk *linker.Linker, opts Options) *Driver {
	return &Driver{
		tool:      tool,
		relocator: relocator,
		linker:    lnk,
		opts:      opts,
		logger:    logging.GetLogger("resolver"),
	}
}

// Resolve processes one group. conflicts is the group's entry list from the
// last full snapshot; an empty list means the group only needs linking.
// A first attempt that relocates nothing, or invalid input at any attempt,
// ends the group Unresolvable; later empty attempts skip the add and
// re-query.
// The returned Stats hold this group's counts only and are meant to be
// merged by the caller.
func (d *Driver) Resolve(ctx context.Context, group string, conflicts []types.ConflictEntry) (types.GroupResult, *stats.Stats) {
	st := stats.New()
	result := types.GroupResult{Group: group}

	if len(conflicts) == 0 {
		d.logger.Info().Str("group", group).Msgf("Linking group: %s", group)
		if err := d.linker.Link(ctx, group, linker.Standalone, st); err != nil {
			result.Outcome = types.OutcomeLinkFailed
			result.Error = err.Error()
			return result, st
		}
		st.Increment(stats.GroupsLinked)
		result.Outcome = types.OutcomeResolved
		return result, st
	}

	d.logger.Info().Str("group", group).Int("conflicts", len(conflicts)).Msgf("Processing conflicted group: %s", group)

	current := conflicts
	for {
		if len(current) == 0 {
			d.logger.Info().Str("group", group).Int("attempts", result.Attempts).Msgf("  Conflicts of group %s resolved", group)
			st.Increment(stats.GroupsLinked)
			result.Outcome = types.OutcomeResolved
			return result, st
		}

		if result.Attempts >= MaxAttempts {
			err := errors.Newf(errors.ErrStillConflicted,
				"group %s still has %d conflict(s) after %d attempts", group, len(current), MaxAttempts).
				WithDetail("group", group)
			d.logger.Warn().Str("group", group).Int("remaining", len(current)).
				Msgf("  Group %s may still have unresolved conflicts", group)
			st.Increment(stats.Warnings)
			result.Outcome = types.OutcomeStillConflicted
			result.Error = err.Error()
			return result, st
		}

		result.Attempts++
		d.logger.Debug().Str("group", group).Int("attempt", result.Attempts).Msg("Relocation attempt")

		relocErr := d.relocate(group, current, st)
		if relocErr != nil && (result.Attempts == 1 || errors.HasErrorCode(relocErr, errors.ErrInvalidInput)) {
			d.logger.Warn().Err(relocErr).Str("group", group).Msgf("Cannot resolve conflicts of group %s", group)
			st.Increment(stats.Warnings)
			result.Outcome = types.OutcomeUnresolvable
			result.Error = relocErr.Error()
			return result, st
		}

		if relocErr != nil {
			// the reported conflicts may be stale; re-query without linking
			d.logger.Debug().Err(relocErr).Str("group", group).Int("attempt", result.Attempts).
				Msg("Nothing relocated, skipping tuckr add for this attempt")
		} else if err := d.linker.Link(ctx, group, linker.ConflictResolution, st); errors.HasErrorCode(err, errors.ErrToolNotFound) {
			// already counted by the linker
			result.Outcome = types.OutcomeAborted
			result.Error = err.Error()
			return result, st
		}

		snap, err := d.tool.Status(ctx, group)
		if err != nil {
			d.abort(group, err, st)
			result.Outcome = types.OutcomeAborted
			result.Error = err.Error()
			return result, st
		}
		current = snap.Conflicts(group)
	}
}

// relocate performs one iteration's relocations. It returns an
// ErrUnresolvable error when nothing at all could be moved, or at once
// when a failure is not a relocation error and retrying cannot help.
func (d *Driver) relocate(group string, conflicts []types.ConflictEntry, st *stats.Stats) error {
	if folder, ok := project.InferFolder(group, conflicts, d.opts.Boundary); ok {
		d.logger.Debug().Str("group", group).Str("folder", folder).Msg("Detected project folder")

		dest, err := d.relocator.RelocateFolder(folder, d.opts.Suffix)
		if err != nil {
			d.logger.Error().Err(err).
				Str("path", folder).
				Str("code", string(errors.GetErrorCode(err))).
				Msgf("  Error renaming '%s', skipping tuckr add", folder)
			st.Increment(stats.Errors)
			return errors.Wrapf(err, errors.ErrUnresolvable, "cannot back up project folder of group %s", group).
				WithDetail("group", group).
				WithDetail("folder", folder)
		}

		d.logger.Info().Str("from", folder).Str("to", dest).Msgf("  Renamed project folder '%s' to '%s'", folder, dest)
		st.Increment(stats.RenamedFolders)
		return nil
	}

	d.logger.Debug().Str("group", group).Msg("No project folder found, relocating conflicting files one by one")

	moved := 0
	var lastErr error
	for _, entry := range conflicts {
		rel, err := d.relocator.RelocateFile(entry, d.opts.Suffix)
		switch {
		case err != nil && !backup.IsRelocationError(err):
			d.logger.Error().Err(err).Str("path", entry.TargetPath).Msgf("  Cannot relocate '%s'", entry.TargetPath)
			st.Increment(stats.Errors)
			return errors.Wrapf(err, errors.ErrUnresolvable, "cannot relocate conflicts of group %s", group).
				WithDetail("group", group)
		case err != nil:
			d.logger.Error().Err(err).
				Str("path", entry.TargetPath).
				Str("code", string(errors.GetErrorCode(err))).
				Msgf("  Error renaming '%s'", entry.TargetPath)
			st.Increment(stats.Errors)
			lastErr = err
		case rel.Skipped:
			d.logger.Warn().Str("path", entry.TargetPath).Msgf("  Conflicting file '%s' no longer exists, skipping", entry.TargetPath)
			st.Increment(stats.Warnings)
		default:
			d.logger.Info().Str("from", rel.From).Str("to", rel.To).Msgf("  Renamed '%s' to '%s'", rel.From, rel.To)
			st.Increment(stats.RenamedFiles)
			moved++
		}
	}

	if moved > 0 {
		return nil
	}

	msg := fmt.Sprintf("none of the %d conflicting file(s) of group %s could be relocated", len(conflicts), group)
	if lastErr != nil {
		return errors.Wrap(lastErr, errors.ErrUnresolvable, msg).WithDetail("group", group)
	}
	return errors.New(errors.ErrUnresolvable, msg).WithDetail("group", group)
}

func (d *Driver) abort(group string, err error, st *stats.Stats) {
	if errors.IsErrorCode(err, errors.ErrToolNotFound) {
		d.logger.Error().Err(err).Str("group", group).Msg("tuckr is not installed or not in PATH")
		st.Increment(stats.Errors)
		return
	}
	d.logger.Warn().Err(err).Str("group", group).Msgf("Cannot fetch status of group %s, giving up on it", group)
	st.Increment(stats.Warnings)
}
