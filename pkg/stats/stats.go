// Package stats counts what happened during a run. Counters are plain
// non-negative integers keyed by name; presentation lives elsewhere.
package stats

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tuckfix/pkg/logging"
	"github.com/rs/zerolog"
)

// Counter names a statistic.
type Counter string

const (
	GroupsProcessed Counter = "groupsProcessed"
	GroupsLinked    Counter = "groupsLinked"
	AlreadyLinked   Counter = "alreadyLinked"
	AddedGroups     Counter = "addedGroups"
	RenamedFolders  Counter = "renamedFolders"
	RenamedFiles    Counter = "renamedFiles"
	SkippedExcluded Counter = "skippedExcluded"
	Unsupported     Counter = "unsupported"
	Nonexistent     Counter = "nonexistent"
	Warnings        Counter = "warnings"
	Errors          Counter = "errors"
)

// Counters lists every known counter in report order.
var Counters = []Counter{
	GroupsProcessed,
	GroupsLinked,
	AlreadyLinked,
	AddedGroups,
	RenamedFolders,
	RenamedFiles,
	SkippedExcluded,
	Unsupported,
	Nonexistent,
	Warnings,
	Errors,
}

var known = func() map[Counter]bool {
	m := make(map[Counter]bool, len(Counters))
	for _, c := range Counters {
		m[c] = true
	}
	return m
}()

// Stats holds the counters of one run, or of one group before it is merged
// into the run. It is not safe for concurrent use.
type Stats struct {
	counts map[Counter]int
	logger zerolog.Logger
}

// New creates an empty Stats.
func New() *Stats {
	return &Stats{
		counts: make(map[Counter]int, len(Counters)),
		logger: logging.GetLogger("stats"),
	}
}

// Increment adds one to c. Unknown counters are rejected with a warning
// and reported as false.
func (s *Stats) Increment(c Counter) bool {
	return s.Add(c, 1)
}

// Add adds n to c. Negative amounts and unknown counters are rejected.
func (s *Stats) Add(c Counter, n int) bool {
	if !known[c] {
		s.logger.Warn().Str("counter", string(c)).Msg("Attempted to increment an unknown counter")
		return false
	}
	if n < 0 {
		s.logger.Warn().Str("counter", string(c)).Int("amount", n).Msg("Refusing to decrement a counter")
		return false
	}
	s.counts[c] += n
	return true
}

// Get returns the value of c.
func (s *Stats) Get(c Counter) int {
	return s.counts[c]
}

// Merge folds other into s.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	for c, n := range other.counts {
		s.counts[c] += n
	}
}

// Map returns a copy of all counters, including zero ones.
func (s *Stats) Map() map[string]int {
	out := make(map[string]int, len(Counters))
	for _, c := range Counters {
		out[string(c)] = s.counts[c]
	}
	return out
}

// Severity classifies a summary line.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// SummaryLine is one line of the end-of-run summary.
type SummaryLine struct {
	Label    string
	Value    int
	Severity Severity
}

func (l SummaryLine) String() string {
	return fmt.Sprintf("%s: %d", l.Label, l.Value)
}

// SummaryLines returns the summary. Totals, linked groups and relocations
// are always present; the rest only when non-zero.
func (s *Stats) SummaryLines() []SummaryLine {
	lines := []SummaryLine{
		{Label: "Groups processed", Value: s.Get(GroupsProcessed)},
		{Label: "Groups linked", Value: s.Get(GroupsLinked)},
		{Label: "Folders renamed for backup", Value: s.Get(RenamedFolders)},
		{Label: "Files renamed for backup", Value: s.Get(RenamedFiles)},
	}

	optional := []SummaryLine{
		{Label: "Groups skipped (excluded)", Value: s.Get(SkippedExcluded), Severity: SeverityWarning},
		{Label: "Unsupported groups", Value: s.Get(Unsupported), Severity: SeverityWarning},
		{Label: "Nonexistent groups", Value: s.Get(Nonexistent), Severity: SeverityWarning},
		{Label: "Warnings", Value: s.Get(Warnings), Severity: SeverityWarning},
		{Label: "Errors", Value: s.Get(Errors), Severity: SeverityError},
	}
	for _, line := range optional {
		if line.Value > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// Summarize renders the summary as plain text.
func (s *Stats) Summarize() string {
	var sb strings.Builder
	sb.WriteString("Summary:\n")
	for _, line := range s.SummaryLines() {
		sb.WriteString("  ")
		sb.WriteString(line.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Log writes the summary through logger, one line per entry, at a level
// matching each line's severity.
func (s *Stats) Log(logger zerolog.Logger) {
	logger.Info().Msg("Summary:")
	for _, line := range s.SummaryLines() {
		var ev *zerolog.Event
		switch line.Severity {
		case SeverityError:
			ev = logger.Error()
		case SeverityWarning:
			ev = logger.Warn()
		default:
			ev = logger.Info()
		}
		ev.Msg("  " + line.String())
	}
}
