// Package reconcile runs a whole tuckfix pass over one status snapshot:
// report linked groups, resolve or link every pending group in order, and
// report unsupported and nonexistent groups. Groups are handled strictly
// one after another.
package reconcile

import (
	"context"
	"strings"

	"github.com/arthur-debert/tuckfix/pkg/linker"
	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/arthur-debert/tuckfix/pkg/resolver"
	"github.com/arthur-debert/tuckfix/pkg/stats"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Runner.
type Options struct {
	Suffix   string
	Excludes []string
	Boundary string
}

// Report is the result of a run.
type Report struct {
	Stats   *stats.Stats        `json:"-" yaml:"-"`
	Results []types.GroupResult `json:"groups" yaml:"groups"`
}

// Failed reports whether the run counted errors or left any group in a
// failure outcome.
func (r *Report) Failed() bool {
	if r.Stats.Get(stats.Errors) > 0 {
		return true
	}
	for _, res := range r.Results {
		if res.Outcome.IsFailure() {
			return true
		}
	}
	return false
}

// Runner processes snapshots.
type Runner struct {
	driver   *resolver.Driver
	excluded map[string]bool
	logger   zerolog.Logger
}

// New creates a Runner that links through tool and relocates through
// relocator.
func New(tool types.Tool, relocator resolver.Relocator, opts Options) *Runner {
	excluded := make(map[string]bool, len(opts.Excludes))
	for _, g := range opts.Excludes {
		excluded[g] = true
	}

	lnk := linker.New(tool, opts.Excludes)
	return &Runner{
		driver: resolver.New(tool, relocator, lnk, resolver.Options{
			Suffix:   opts.Suffix,
			Boundary: opts.Boundary,
		}),
		excluded: excluded,
		logger:   logging.GetLogger("reconcile"),
	}
}

// Run processes snap. Per-group failures are absorbed into the report's
// counters; Run itself never fails.
func (r *Runner) Run(ctx context.Context, snap *types.StatusSnapshot) *Report {
	report := &Report{Stats: stats.New()}
	st := report.Stats

	if linked := snap.Linked(); len(linked) > 0 {
		r.logger.Info().Strs("groups", linked).Msgf("Already linked groups: %s", strings.Join(linked, ", "))
		st.Add(stats.AlreadyLinked, len(linked))
		st.Add(stats.GroupsProcessed, len(linked))
		st.Add(stats.GroupsLinked, len(linked))
	}

	pending := snap.PendingGroups()
	r.logger.Debug().Int("count", len(pending)).Msg("Pending groups")

	for _, group := range pending {
		if err := ctx.Err(); err != nil {
			r.logger.Warn().Err(err).Str("group", group).Msg("Run cancelled, remaining groups left untouched")
			st.Increment(stats.Warnings)
			break
		}
		if r.excluded[group] {
			r.logger.Warn().Str("group", group).Msgf("Skipping excluded group '%s'", group)
			st.Increment(stats.SkippedExcluded)
			continue
		}

		st.Increment(stats.GroupsProcessed)
		result, groupStats := r.driver.Resolve(ctx, group, snap.Conflicts(group))
		st.Merge(groupStats)
		report.Results = append(report.Results, result)

		r.logger.Debug().
			Str("group", group).
			Str("outcome", result.Outcome.String()).
			Int("attempts", result.Attempts).
			Msg("Group finished")
	}

	for _, group := range snap.Unsupported() {
		r.logger.Warn().Str("group", group).Msgf("Group '%s' is not supported on this platform", group)
		st.Increment(stats.Unsupported)
	}
	for _, group := range snap.Nonexistent() {
		r.logger.Warn().Str("group", group).Msgf("Group '%s' does not exist (check spelling or missing dotfiles)", group)
		st.Increment(stats.Nonexistent)
	}

	return report
}
